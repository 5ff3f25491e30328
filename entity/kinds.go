package entity

import "github.com/sghaida/fluent/chain"

// Levels, as reported in errors and logs.
const (
	KindRoot    chain.Kind = "root"
	KindDerived chain.Kind = "derived"
	KindSealed  chain.Kind = "sealed"
)

// Field keys for chain.WithRequired and registries.
const (
	FieldProp1      chain.Field = "prop1"
	FieldProp2      chain.Field = "prop2"
	FieldSubProp1   chain.Field = "subProp1"
	FieldSubProp2   chain.Field = "subProp2"
	FieldFinalProp1 chain.Field = "finalProp1"
	FieldFinalProp2 chain.Field = "finalProp2"
)
