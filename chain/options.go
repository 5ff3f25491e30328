package chain

import (
	"github.com/sghaida/fluent/pkg/log"
)

// Option customizes a builder's Core. Options are applied once, when the
// concrete builder binds itself.
type Option func(*Core)

// WithPolicy sets the reuse policy. Default: Reusable.
func WithPolicy(p Policy) Option {
	if p != Reusable && p != SingleUse {
		panic("chain: WithPolicy(unknown policy)")
	}
	return func(c *Core) {
		c.policy = p
	}
}

// WithRequired declares fields that must be set before a build.
// Repeated options accumulate. Panics on an empty field name.
func WithRequired(fields ...Field) Option {
	for _, f := range fields {
		if f == "" {
			panic("chain: WithRequired(\"\")")
		}
	}
	return func(c *Core) {
		for _, f := range fields {
			if !containsField(c.required, f) {
				c.required = append(c.required, f)
			}
		}
	}
}

// WithLogger routes build events to l. Panics on nil.
func WithLogger(l log.Logger) Option {
	if l == nil {
		panic("chain: WithLogger(nil)")
	}
	return func(c *Core) {
		c.logger = l
	}
}

func containsField(fields []Field, f Field) bool {
	for _, existing := range fields {
		if existing == f {
			return true
		}
	}
	return false
}
