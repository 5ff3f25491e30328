package chain

import (
	"sort"

	"github.com/sghaida/fluent/pkg/log"
)

// Kind names a level of a value hierarchy (e.g. "root", "sealed").
// It only appears in errors and log events.
type Kind string

// Field is the key of one builder field, used by required-field checks and
// registries.
type Field string

// Policy decides whether a builder may build more than once.
type Policy int

const (
	// Reusable builders may build any number of times; each build copies the
	// current scratch state. This is the default.
	Reusable Policy = iota

	// SingleUse builders reject every build after the first one.
	SingleUse
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case Reusable:
		return "reusable"
	case SingleUse:
		return "single-use"
	default:
		return "unknown"
	}
}

// State is the lifecycle state of a builder.
type State int

const (
	// Open builders have not built yet.
	Open State = iota

	// Consumed builders built at least once. Under Reusable they keep
	// accepting setters and builds.
	Consumed
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Consumed {
		return "consumed"
	}
	return "open"
}

// Core is the non-generic state shared by every level of one builder.
//
// The zero value is ready to use: Reusable, no required fields, no logging.
type Core struct {
	policy   Policy
	required []Field
	set      map[Field]struct{}
	builds   int
	logger   log.Logger
}

// Apply applies opts in order; later options override earlier ones.
func (c *Core) Apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}

// Mark records that field received a value.
func (c *Core) Mark(field Field) {
	if c.set == nil {
		c.set = make(map[Field]struct{})
	}
	c.set[field] = struct{}{}
}

// IsSet reports whether field received a value, either from a setter or a registry.
func (c *Core) IsSet(field Field) bool {
	_, ok := c.set[field]
	return ok
}

// Policy returns the configured reuse policy.
func (c *Core) Policy() Policy { return c.policy }

// State returns Open until the first successful build.
func (c *Core) State() State {
	if c.builds > 0 {
		return Consumed
	}
	return Open
}

// Builds returns the number of successful builds.
func (c *Core) Builds() int { return c.builds }

// Logger returns the configured logger (never nil).
func (c *Core) Logger() log.Logger {
	if c.logger == nil {
		return log.NoopLogger{}
	}
	return c.logger
}

// Check reports whether a build of kind may proceed.
//
// The policy is checked first, then required fields in the order they were
// declared; only the first violation is reported.
func (c *Core) Check(kind Kind) error {
	if err := c.checkPolicy(kind); err != nil {
		return err
	}
	for _, f := range c.required {
		if !c.IsSet(f) {
			return MissingFieldError{Kind: kind, Field: f}
		}
	}
	return nil
}

func (c *Core) checkPolicy(kind Kind) error {
	if c.policy == SingleUse && c.builds > 0 {
		return ConsumedError{Kind: kind, Builds: c.builds}
	}
	return nil
}

// setFields lists the set fields in lexical order.
func (c *Core) setFields() []string {
	fields := make([]string, 0, len(c.set))
	for f := range c.set {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return fields
}

func (c *Core) commit(kind Kind) {
	c.builds++
	c.Logger().Debug("entity built",
		log.String("kind", string(kind)),
		log.Int("builds", c.builds),
		log.Strs("fields_set", c.setFields()),
	)
}

func (c *Core) reject(kind Kind, err error) {
	c.Logger().Warn("build rejected", log.String("kind", string(kind)), log.Err(err))
}

// TryBuild checks c and, if the build may proceed, assembles a value and
// marks the builder consumed.
func TryBuild[E any](c *Core, kind Kind, assemble func() E) (E, error) {
	if err := c.Check(kind); err != nil {
		c.reject(kind, err)
		var zero E
		return zero, err
	}
	v := assemble()
	c.commit(kind)
	return v, nil
}

// Build is TryBuild for callers that treat a violation as a programmer error.
// It panics with the error TryBuild would have returned. Under default
// options it never panics.
func Build[E any](c *Core, kind Kind, assemble func() E) E {
	v, err := TryBuild(c, kind, assemble)
	if err != nil {
		panic(err)
	}
	return v
}

// BuildWith is TryBuild with unset slots defaulted from reg first.
//
// Filling and building happen as one step: when the build is rejected, by
// policy, by a registry error or by a missing required field, no slot value
// and no field mark changes. A nil reg behaves like TryBuild.
func BuildWith[E any](c *Core, kind Kind, reg Registry, slots []Slot, assemble func() E) (E, error) {
	var zero E

	if err := c.checkPolicy(kind); err != nil {
		c.reject(kind, err)
		return zero, err
	}

	staged, err := c.resolve(reg, kind, slots)
	if err != nil {
		c.reject(kind, err)
		return zero, err
	}

	undo := c.fill(staged)
	if err := c.Check(kind); err != nil {
		undo()
		c.reject(kind, err)
		return zero, err
	}

	v := assemble()
	for _, d := range staged {
		c.Logger().Debug("field defaulted from registry",
			log.String("kind", string(kind)),
			log.String("field", string(d.slot.Field)),
		)
	}
	c.commit(kind)
	return v, nil
}
