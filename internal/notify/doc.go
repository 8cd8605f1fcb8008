// Package notify reports run outcomes to end users through a Discord
// webhook. It degrades to a no-op when no webhook is configured, so the
// pipeline never branches on notification availability.
package notify
