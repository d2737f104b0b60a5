package module

import "reflect"

// PortsOf finds a T in m.Ports(): either the port set itself or one of its exported fields
func PortsOf[T any](m Module) (t T, ok bool) {
	if m == nil {
		return t, false
	}
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, ok2 := p.(T); ok2 {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return t, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok2 := f.Interface().(T); ok2 {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf is PortsOf for bootstrap code; a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	name := "<nil>"
	if m != nil {
		name = m.Name()
	}
	panic("module: requested port not found on module " + name)
}
