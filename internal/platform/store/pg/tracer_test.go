package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTracerRedactsArgs(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
	tr := Tracer(root)

	tr.OnQuery(context.Background(), QueryEvent{
		SQL:       "INSERT INTO corrections (content)\n\tVALUES ($1)",
		Args:      []any{"4532015112830366"},
		ElapsedUS: 1500,
	})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", Slow: true, Err: errors.New("boom")})

	out := buf.String()
	if strings.Contains(out, "4532015112830366") {
		t.Fatalf("argument leaked: %s", out)
	}
	for _, want := range []string{
		`"sql":"INSERT INTO corrections (content) VALUES ($1)"`,
		`"nargs":1`,
		`"elapsed_ms":1.5`,
		`"level":"warn"`,
		`"error":"boom"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestCompact(t *testing.T) {
	if got := compact("  SELECT  *\n FROM\tx  "); got != "SELECT * FROM x" {
		t.Fatalf("compact = %q", got)
	}
}

func TestOpenBadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@localhost:notaport/db"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
