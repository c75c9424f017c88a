// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors reported by the triples,
// splitting and instances packages.
//
// Every helper method is nil-safe: components keep a *Collectors that is nil
// unless the caller wired one in, and report unconditionally.
package metrics
