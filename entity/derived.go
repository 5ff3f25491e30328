package entity

import "github.com/sghaida/fluent/chain"

// rootEntity lets DerivedEntity embed RootEntity under an unexported field
// name while still promoting its accessors.
type rootEntity = RootEntity

// DerivedEntity is a RootEntity with two more fields.
type DerivedEntity struct {
	rootEntity

	subProp1 string
	subProp2 string
}

func (e DerivedEntity) SubProp1() string { return e.subProp1 }
func (e DerivedEntity) SubProp2() string { return e.subProp2 }

// Root returns the root-level part of e.
func (e DerivedEntity) Root() RootEntity { return e.rootEntity }

// DerivedView is the read-only shape of DerivedEntity and its descendants.
type DerivedView interface {
	RootView
	SubProp1() string
	SubProp2() string
}

// DerivedSetters extends RootSetters with the derived-level setters.
type DerivedSetters[S any] interface {
	RootSetters[S]
	SetSubProp1(v string) S
	SetSubProp2(v string) S
}

// DerivedBuilder collects DerivedEntity fields on top of RootBuilder.
//
// It stays abstract: the self type is left to the concrete builder that
// embeds it (DerivedLeaf, SealedBuilder, or a builder from another package).
type DerivedBuilder[S any] struct {
	RootBuilder[S]

	subProp1 string
	subProp2 string
}

func (b *DerivedBuilder[S]) SetSubProp1(v string) S {
	s := b.Self()
	b.subProp1 = v
	b.core.Mark(FieldSubProp1)
	return s
}

func (b *DerivedBuilder[S]) SetSubProp2(v string) S {
	s := b.Self()
	b.subProp2 = v
	b.core.Mark(FieldSubProp2)
	return s
}

// Snapshot copies the root- and derived-level scratch state into a value.
func (b *DerivedBuilder[S]) Snapshot() DerivedEntity {
	return DerivedEntity{
		rootEntity: b.RootBuilder.Snapshot(),
		subProp1:   b.subProp1,
		subProp2:   b.subProp2,
	}
}

// Build returns a new DerivedEntity holding the current scratch values.
func (b *DerivedBuilder[S]) Build() DerivedEntity {
	return chain.Build(b.Core(), KindDerived, b.Snapshot)
}

// TryBuild is Build reporting policy and required-field violations as errors.
func (b *DerivedBuilder[S]) TryBuild() (DerivedEntity, error) {
	return chain.TryBuild(b.Core(), KindDerived, b.Snapshot)
}

// BuildWith fills unset fields from reg and builds. A rejected build leaves
// the builder unchanged.
func (b *DerivedBuilder[S]) BuildWith(reg chain.Registry) (DerivedEntity, error) {
	return chain.BuildWith(b.Core(), KindDerived, reg, b.Slots(), b.Snapshot)
}

// Slots lists the root- and derived-level fields with the scratch variable
// holding each. Levels declared in other packages append their own.
func (b *DerivedBuilder[S]) Slots() []chain.Slot {
	return append(b.RootBuilder.Slots(),
		chain.Slot{Field: FieldSubProp1, Value: &b.subProp1},
		chain.Slot{Field: FieldSubProp2, Value: &b.subProp2},
	)
}

// DerivedLeaf is the one concrete builder of DerivedEntity.
type DerivedLeaf struct {
	DerivedBuilder[*DerivedLeaf]
}

// NewDerivedBuilder returns a builder for DerivedEntity.
func NewDerivedBuilder(opts ...chain.Option) *DerivedLeaf {
	b := &DerivedLeaf{}
	b.Bind(b, opts...)
	return b
}

var (
	_ DerivedView                  = DerivedEntity{}
	_ DerivedSetters[*DerivedLeaf] = (*DerivedLeaf)(nil)
)
