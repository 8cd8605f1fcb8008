// Package overseerr submits releases to an Overseerr request queue, one
// title at a time. The backend deduplicates against already-requested and
// already-available media, so the client probes status first and treats a
// conflict on submit as success.
package overseerr
