// Command chaingen generates self-typed builder chains for immutable value
// hierarchies.
//
// Hand-writing a chain is mostly ceremony: one abstract builder per level
// parameterized by the concrete builder S, setters that return S, a single
// concrete leaf per open level that binds itself, and a sealed builder that
// closes the chain. chaingen writes that ceremony from a short spec; the
// generated code uses package chain exactly like package entity does.
//
// # Spec format
//
// The format is picked from the file extension: .json, .yaml/.yml, .toml or
// .hcl. The same chain in YAML and HCL:
//
//	package: entity
//	levels:
//	  - name: Root
//	    fields: [{name: Prop1}, {name: Prop2}]
//	  - name: Derived
//	    fields: [{name: SubProp1}, {name: SubProp2}]
//	  - name: Sealed
//	    sealed: true
//	    fields: [{name: FinalProp1}, {name: FinalProp2, type: string}]
//
//	package = "entity"
//	level "Root" {
//	  field "Prop1" {}
//	  field "Prop2" {}
//	}
//	level "Sealed" {
//	  sealed = true
//	  field "FinalProp1" { type = "string" }
//	}
//
// Rules:
//
//   - Level and field names are exported Go identifiers, unique across the chain.
//   - Only the last level may be sealed, and the first level cannot be.
//   - type defaults to string. Only string fields take part in registry
//     defaults (BuildWith); other types must be predeclared or declared in the
//     target package.
//   - type must be copied by assignment: slices, maps, pointers, channels and
//     functions are rejected, also inside arrays and struct literals, since
//     values from one builder would share them. Named types are not
//     inspected; a named slice type defeats the check.
//   - package may be omitted when the output directory holds an owner file
//     (a .go file with a //go:generate directive running chaingen); its package
//     clause is used. If the owner file imports the chain package under an
//     alias, the generated code uses the same alias.
//
// Generated API (per level X with parent P)
//
//   - XEntity with one accessor per field and P() returning the parent part
//   - XBuilder[S] (open levels) or XBuilder (sealed level) with SetF(v) for
//     each field, Snapshot, Build, TryBuild, BuildWith and Slots
//   - XLeaf and NewXBuilder(opts ...chain.Option) for open levels
//   - KindX and FieldF constants
//
// Usage
//
//	//go:generate go run github.com/sghaida/fluent/cmd/chaingen --spec ./chain.yaml --out ./chain.gen.go
//
//	chaingen --spec chain.hcl --out chain.gen.go --watch
//
// With --watch, chaingen keeps running and regenerates whenever the spec
// file is written, until interrupted. An output file that already holds the
// generated bytes is left untouched.
package main
