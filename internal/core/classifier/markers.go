package classifier

// markerSet is a byte-level Aho-Corasick automaton answering one question:
// does any marker occur in s. Markers are UTF-8 so matching on bytes is exact
type markerSet struct {
	nodes []markerNode
}

type markerNode struct {
	next     [256]int32 // -1 when absent
	fail     int32
	terminal bool // a marker ends here or at a suffix reachable by fail links
}

func newMarkerNode() markerNode {
	var n markerNode
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

func newMarkerSet(markers []string) *markerSet {
	m := &markerSet{nodes: []markerNode{newMarkerNode()}}
	for _, mk := range markers {
		m.add(mk)
	}
	m.link()
	return m
}

func (m *markerSet) add(marker string) {
	if marker == "" {
		return
	}
	state := int32(0)
	for i := 0; i < len(marker); i++ {
		b := marker[i]
		nxt := m.nodes[state].next[b]
		if nxt == -1 {
			nxt = int32(len(m.nodes))
			m.nodes[state].next[b] = nxt
			m.nodes = append(m.nodes, newMarkerNode())
		}
		state = nxt
	}
	m.nodes[state].terminal = true
}

// link computes failure links breadth first
func (m *markerSet) link() {
	queue := make([]int32, 0, len(m.nodes))
	for b := 0; b < 256; b++ {
		if s := m.nodes[0].next[b]; s != -1 {
			queue = append(queue, s)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		r := queue[qi]
		for b := 0; b < 256; b++ {
			s := m.nodes[r].next[b]
			if s == -1 {
				continue
			}
			queue = append(queue, s)

			f := m.nodes[r].fail
			for f != 0 && m.nodes[f].next[b] == -1 {
				f = m.nodes[f].fail
			}
			if nxt := m.nodes[f].next[b]; nxt != -1 && nxt != s {
				m.nodes[s].fail = nxt
			}
			if m.nodes[m.nodes[s].fail].terminal {
				m.nodes[s].terminal = true
			}
		}
	}
}

// contains reports whether any marker is a substring of s
func (m *markerSet) contains(s string) bool {
	if m == nil || len(m.nodes) == 1 {
		return false
	}
	state := int32(0)
	for i := 0; i < len(s); i++ {
		b := s[i]
		for state != 0 && m.nodes[state].next[b] == -1 {
			state = m.nodes[state].fail
		}
		if nxt := m.nodes[state].next[b]; nxt != -1 {
			state = nxt
		}
		if m.nodes[state].terminal {
			return true
		}
	}
	return false
}
