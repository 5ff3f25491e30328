// Package chain provides the runtime pieces shared by self-typed builder chains.
//
// A builder chain is a stack of embedded builder structs, one per level of a
// value hierarchy, all parameterized by S: the concrete builder that closes
// the chain. Every fluent setter at every level returns S, so a caller can mix
// setters of any level in one expression without a cast:
//
//	v := entity.NewSealedBuilder().
//		SetSubProp1("c"). // declared on the derived level
//		SetProp1("a").    // declared on the root level
//		SetFinalProp1("e").
//		Build()
//
// The package supplies three things to such chains:
//
//   - Self[S]: the "return self" slot. The root level embeds it, the concrete
//     builder binds it exactly once; binding twice or using an unbound
//     abstract builder panics.
//   - Core: non-generic lifecycle state (Open/Consumed), the reuse Policy,
//     required-field checks and logging, configured with functional Options.
//   - Registry: optional build-time defaults for fields that were never set,
//     applied by BuildWith. BuildWith fills and builds as one step; a
//     rejected build leaves slots and field marks untouched.
//
// Under default options nothing in a chain can fail: Build always succeeds and
// may be called repeatedly. SingleUse and WithRequired are opt-in hardening;
// TryBuild reports their violations as typed errors (MissingFieldError,
// ConsumedError) and Build panics with the same error.
//
// Builders are used through pointers and must not be copied once bound; Self
// carries a marker that go vet's copylocks check reports. Builders are not
// safe for concurrent mutation. Values they produce are.
package chain
