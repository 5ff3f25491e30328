package chain

import (
	"fmt"
)

// Registry supplies default field values at build time.
//
// A builder only asks for fields that were never set, once per BuildWith
// call. Implementations should not mutate the builder they serve.
type Registry interface {
	Resolve(kind Kind, field Field) (val string, ok bool, err error)
}

// RegistryFunc adapts a plain function to Registry.
type RegistryFunc func(kind Kind, field Field) (string, bool, error)

// Resolve implements Registry.
func (f RegistryFunc) Resolve(kind Kind, field Field) (string, bool, error) {
	return f(kind, field)
}

// MapRegistry holds defaults per field, optionally narrowed to one kind.
//
// The zero value is an empty registry ready for Provide.
type MapRegistry struct {
	shared map[Field]string
	byKind map[Kind]map[Field]string
}

// NewMapRegistry returns an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{}
}

// Provide sets the default of field for builders of every kind.
func (r *MapRegistry) Provide(field Field, val string) *MapRegistry {
	if r.shared == nil {
		r.shared = make(map[Field]string)
	}
	r.shared[field] = val
	return r
}

// ProvideFor sets the default of field for builders of kind only. It takes
// precedence over Provide.
func (r *MapRegistry) ProvideFor(kind Kind, field Field, val string) *MapRegistry {
	if r.byKind == nil {
		r.byKind = make(map[Kind]map[Field]string)
	}
	if r.byKind[kind] == nil {
		r.byKind[kind] = make(map[Field]string)
	}
	r.byKind[kind][field] = val
	return r
}

// Resolve implements Registry.
func (r *MapRegistry) Resolve(kind Kind, field Field) (string, bool, error) {
	if v, ok := r.byKind[kind][field]; ok {
		return v, true, nil
	}
	v, ok := r.shared[field]
	return v, ok, nil
}

// Slot binds a field key to the scratch variable holding its value.
type Slot struct {
	Field Field
	Value *string
}

// defaulted is a registry value waiting to be written into its slot.
type defaulted struct {
	slot Slot
	val  string
}

// resolve asks reg for every unset slot without writing anything.
func (c *Core) resolve(reg Registry, kind Kind, slots []Slot) ([]defaulted, error) {
	if reg == nil {
		return nil, nil
	}

	var staged []defaulted
	for _, s := range slots {
		if c.IsSet(s.Field) {
			continue
		}
		v, ok, err := resolveSafely(reg, kind, s.Field)
		if err != nil {
			return nil, fmt.Errorf("chain: %s: resolve %q: %w", kind, s.Field, err)
		}
		if ok {
			staged = append(staged, defaulted{slot: s, val: v})
		}
	}
	return staged, nil
}

// resolveSafely converts a panicking registry into ErrRegistryPanic.
func resolveSafely(reg Registry, kind Kind, field Field) (val string, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val, ok, err = "", false, fmt.Errorf("%w: %v", ErrRegistryPanic, rec)
		}
	}()
	return reg.Resolve(kind, field)
}

// fill writes staged values into their slots and marks them set. The
// returned func restores the previous values and marks.
func (c *Core) fill(staged []defaulted) (undo func()) {
	prev := make([]string, len(staged))
	for i, d := range staged {
		prev[i] = *d.slot.Value
		*d.slot.Value = d.val
		c.Mark(d.slot.Field)
	}
	return func() {
		for i, d := range staged {
			*d.slot.Value = prev[i]
			delete(c.set, d.slot.Field)
		}
	}
}
