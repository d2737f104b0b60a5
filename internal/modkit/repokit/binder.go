package repokit

// Binder binds a domain repo to a specific Queryer, a pool or a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc makes a Binder from a function
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer panics on a nil q; that is a wiring bug
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind validates q then binds
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}
