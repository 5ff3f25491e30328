// Package fluent provides self-typed builder chains for immutable value
// hierarchies.
//
// Every setter of a chain returns the most-derived builder, so calling code
// never casts:
//
//	v := entity.NewSealedBuilder().
//		SetProp1("a").      // declared on RootBuilder
//		SetSubProp1("b").   // declared on DerivedBuilder
//		SetFinalProp1("c"). // declared on SealedBuilder
//		Build()             // SealedEntity
//
// See subpackages:
//   - chain: runtime support every chain embeds (self binding, build policy,
//     required fields, registry defaults)
//   - entity: the Root, Derived and Sealed chain
//   - examples/extension: a chain extended from another package
//   - cmd/chaingen: generator that writes a chain from a JSON, YAML, TOML or HCL spec
package fluent
