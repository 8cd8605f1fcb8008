// Package runlock enforces single-instance execution for cron-driven runs
// using an advisory file lock.
package runlock
