package chain

// Self holds the most-derived builder of a chain.
//
// The root level of a chain embeds (or holds) a Self[S]; the single concrete
// builder that fixes S calls Bind with itself when it is constructed. Every
// fluent setter then returns Get(), which is already statically typed S, so
// no level ever needs a type assertion.
//
// The zero value is unbound. Get on an unbound Self panics with
// ErrSelfUnbound, which is what makes abstract builders unusable on their own.
//
// A Self must not be copied after Bind: the copy still returns the original
// builder. go vet's copylocks check reports such copies.
type Self[S any] struct {
	noCopy noCopy

	self  S
	bound bool
}

// noCopy makes go vet report copies of the struct that embeds it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Bind records s as the most-derived builder.
//
// Bind must be called exactly once per chain; a second call panics with
// ErrSelfRebound.
func (r *Self[S]) Bind(s S) {
	if r.bound {
		panic(ErrSelfRebound)
	}
	r.self = s
	r.bound = true
}

// Get returns the bound builder.
func (r *Self[S]) Get() S {
	if !r.bound {
		panic(ErrSelfUnbound)
	}
	return r.self
}

// Bound reports whether Bind has been called.
func (r *Self[S]) Bound() bool { return r.bound }
