// Package service exposes the state of a running broadcast node over HTTP.
//
// The only endpoint is /stats, which returns the node snapshot (id, neighbors,
// delivered values, and the values each tracked peer is known to have) as
// canonical JSON.
package service
