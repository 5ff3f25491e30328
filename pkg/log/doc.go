// Package log is the small structured logging facade used across fluent.
//
// Library code (chain, entity) logs only through the Logger interface and
// defaults to NoopLogger, so importing fluent never produces output on its
// own. Commands plug in the zerolog-backed adapter.
//
//	logger := log.NewZerologAdapter(os.Stderr)
//	b := entity.NewSealedBuilder(chain.WithLogger(logger))
package log
