// Package main hosts the digitarr CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the single-shot release check, plus
// configuration scaffolding and connectivity probes for the downstream
// services. Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands here.
package main
