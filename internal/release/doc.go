// Package release defines the immutable movie release record shared by every
// pipeline stage. The catalog client is the only producer; everything else
// filters, dispatches, or reports the records unchanged.
package release
