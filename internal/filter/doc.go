// Package filter narrows discovered releases with an ordered chain of
// inclusion/exclusion rules. Each stage is a pure function of a release
// slice and one config slice so it can be exercised on its own.
package filter
