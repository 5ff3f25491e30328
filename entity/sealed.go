package entity

import "github.com/sghaida/fluent/chain"

type derivedEntity = DerivedEntity

// SealedEntity is the last level of the hierarchy.
type SealedEntity struct {
	derivedEntity

	finalProp1 string
	finalProp2 string
}

func (e SealedEntity) FinalProp1() string { return e.finalProp1 }
func (e SealedEntity) FinalProp2() string { return e.finalProp2 }

// Derived returns the derived-level part of e.
func (e SealedEntity) Derived() DerivedEntity { return e.derivedEntity }

// SealedView is the read-only shape of SealedEntity.
type SealedView interface {
	DerivedView
	FinalProp1() string
	FinalProp2() string
}

// SealedBuilder closes the chain: it fixes S to itself, so it needs no
// separate concrete leaf and is not meant to be embedded.
type SealedBuilder struct {
	DerivedBuilder[*SealedBuilder]

	finalProp1 string
	finalProp2 string
}

// NewSealedBuilder returns a builder for SealedEntity.
func NewSealedBuilder(opts ...chain.Option) *SealedBuilder {
	b := &SealedBuilder{}
	b.Bind(b, opts...)
	return b
}

func (b *SealedBuilder) SetFinalProp1(v string) *SealedBuilder {
	s := b.Self()
	b.finalProp1 = v
	b.core.Mark(FieldFinalProp1)
	return s
}

func (b *SealedBuilder) SetFinalProp2(v string) *SealedBuilder {
	s := b.Self()
	b.finalProp2 = v
	b.core.Mark(FieldFinalProp2)
	return s
}

// Snapshot copies the scratch state of all three levels into a value.
func (b *SealedBuilder) Snapshot() SealedEntity {
	return SealedEntity{
		derivedEntity: b.DerivedBuilder.Snapshot(),
		finalProp1:    b.finalProp1,
		finalProp2:    b.finalProp2,
	}
}

// Build returns a new SealedEntity holding the current scratch values.
func (b *SealedBuilder) Build() SealedEntity {
	return chain.Build(b.Core(), KindSealed, b.Snapshot)
}

// TryBuild is Build reporting policy and required-field violations as errors.
func (b *SealedBuilder) TryBuild() (SealedEntity, error) {
	return chain.TryBuild(b.Core(), KindSealed, b.Snapshot)
}

// BuildWith fills unset fields from reg and builds. A rejected build leaves
// the builder unchanged.
func (b *SealedBuilder) BuildWith(reg chain.Registry) (SealedEntity, error) {
	return chain.BuildWith(b.Core(), KindSealed, reg, b.Slots(), b.Snapshot)
}

// Slots lists the fields of all three levels.
func (b *SealedBuilder) Slots() []chain.Slot {
	return append(b.DerivedBuilder.Slots(),
		chain.Slot{Field: FieldFinalProp1, Value: &b.finalProp1},
		chain.Slot{Field: FieldFinalProp2, Value: &b.finalProp2},
	)
}

var (
	_ SealedView                     = SealedEntity{}
	_ DerivedSetters[*SealedBuilder] = (*SealedBuilder)(nil)
)
