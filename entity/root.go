package entity

import "github.com/sghaida/fluent/chain"

// RootEntity is the immutable base value.
type RootEntity struct {
	prop1 string
	prop2 string
}

func (e RootEntity) Prop1() string { return e.prop1 }
func (e RootEntity) Prop2() string { return e.prop2 }

// RootView is the read-only shape shared by every value in the hierarchy.
type RootView interface {
	Prop1() string
	Prop2() string
}

// RootSetters is satisfied by every builder whose setters return S.
// It is the bound to use for helpers that must work on any builder in the
// chain:
//
//	func stamp[S RootSetters[S]](b S) S { return b.SetProp2("stamped") }
type RootSetters[S any] interface {
	SetProp1(v string) S
	SetProp2(v string) S
}

// RootBuilder collects RootEntity fields.
//
// S is the concrete builder closing the chain. RootBuilder is meant to be
// embedded; the embedding concrete builder calls Bind with itself exactly once.
type RootBuilder[S any] struct {
	self chain.Self[S]
	core chain.Core

	prop1 string
	prop2 string
}

// Bind discharges the self-type contract for the whole chain and applies
// opts. Only the concrete builder calls it, once, from its constructor; a
// second call panics with chain.ErrSelfRebound.
func (b *RootBuilder[S]) Bind(self S, opts ...chain.Option) {
	b.self.Bind(self)
	b.core.Apply(opts...)
}

// Self returns the builder as its most-derived type.
func (b *RootBuilder[S]) Self() S { return b.self.Get() }

// Core exposes lifecycle state to levels declared outside this package.
func (b *RootBuilder[S]) Core() *chain.Core {
	b.self.Get()
	return &b.core
}

// State reports whether the builder has built at least once.
func (b *RootBuilder[S]) State() chain.State { return b.core.State() }

// Builds returns the number of successful builds.
func (b *RootBuilder[S]) Builds() int { return b.core.Builds() }

func (b *RootBuilder[S]) SetProp1(v string) S {
	s := b.self.Get()
	b.prop1 = v
	b.core.Mark(FieldProp1)
	return s
}

func (b *RootBuilder[S]) SetProp2(v string) S {
	s := b.self.Get()
	b.prop2 = v
	b.core.Mark(FieldProp2)
	return s
}

// Snapshot copies the root-level scratch state into a value without
// affecting the builder's lifecycle.
func (b *RootBuilder[S]) Snapshot() RootEntity {
	return RootEntity{prop1: b.prop1, prop2: b.prop2}
}

// Build returns a new RootEntity holding the current scratch values.
func (b *RootBuilder[S]) Build() RootEntity {
	return chain.Build(b.Core(), KindRoot, b.Snapshot)
}

// TryBuild is Build reporting policy and required-field violations as errors.
func (b *RootBuilder[S]) TryBuild() (RootEntity, error) {
	return chain.TryBuild(b.Core(), KindRoot, b.Snapshot)
}

// BuildWith fills unset fields from reg and builds. A rejected build leaves
// the builder unchanged.
func (b *RootBuilder[S]) BuildWith(reg chain.Registry) (RootEntity, error) {
	return chain.BuildWith(b.Core(), KindRoot, reg, b.Slots(), b.Snapshot)
}

// Slots lists the root-level fields with the scratch variable holding each.
func (b *RootBuilder[S]) Slots() []chain.Slot {
	return []chain.Slot{
		{Field: FieldProp1, Value: &b.prop1},
		{Field: FieldProp2, Value: &b.prop2},
	}
}

// RootLeaf is the one concrete builder of RootEntity.
type RootLeaf struct {
	RootBuilder[*RootLeaf]
}

// NewRootBuilder returns a builder for RootEntity.
func NewRootBuilder(opts ...chain.Option) *RootLeaf {
	b := &RootLeaf{}
	b.Bind(b, opts...)
	return b
}

var (
	_ RootView               = RootEntity{}
	_ RootSetters[*RootLeaf] = (*RootLeaf)(nil)
)
