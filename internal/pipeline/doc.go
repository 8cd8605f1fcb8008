// Package pipeline runs the single-shot release check: discover today's
// digital releases, filter them, submit survivors to the acquisition sinks,
// and notify end users of the outcomes. Everything is sequential; one
// invocation does one day's work and exits.
package pipeline
