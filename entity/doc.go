// Package entity is a three-level hierarchy of immutable values built through
// self-typed fluent builders.
//
//	RootEntity    {prop1, prop2}
//	DerivedEntity RootEntity + {subProp1, subProp2}
//	SealedEntity  DerivedEntity + {finalProp1, finalProp2}
//
// Each value embeds its parent's value, so every accessor of an ancestor is
// available on a descendant and a DerivedEntity satisfies RootView.
//
// Builders mirror the values. RootBuilder[S] and DerivedBuilder[S] are
// abstract: S is the concrete builder that closes the chain and every setter
// they declare returns S. RootLeaf and DerivedLeaf are the only concrete
// builders for the two open levels; SealedBuilder closes the chain for the
// last level and is not generic.
//
//	e := entity.NewDerivedBuilder().
//		SetSubProp1("c"). // returns *DerivedLeaf
//		SetProp1("a").    // declared on RootBuilder, still returns *DerivedLeaf
//		Build()           // DerivedEntity
//
// Further levels may be added outside this package by embedding
// DerivedBuilder[S] (or RootBuilder[S]) and calling Bind once from the new
// concrete builder; see examples/extension.
//
// Usage notes:
//   - Build never fails under default options and may be called repeatedly.
//     Each call copies the scratch state into a new value.
//   - Abstract builders must not be used directly. On the zero value of any
//     builder, including RootLeaf{}, setters, Self, Core and every build
//     method panic with chain.ErrSelfUnbound. Snapshot, Slots, State and
//     Builds only read scratch state and do not panic.
//   - Builders are used through pointers only. A copied builder still
//     returns the original from its setters; go vet's copylocks check
//     reports such copies.
//   - BuildWith fills and builds as one step: a rejected build leaves the
//     builder as it was.
//   - Builders are not safe for concurrent mutation; values are.
package entity
