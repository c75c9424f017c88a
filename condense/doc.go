// SPDX-License-Identifier: MIT

// Package condense builds and applies ID renumberings that compact a possibly
// sparse ID space into a contiguous one.
//
// A Condenser holds condensation[old] = new, or -1 when old is dropped. The
// zero Condenser is the identity; Active reports false for it, so callers can
// skip work cheaply. Make returns the identity whenever the observed IDs are
// already exactly 0..k-1.
//
// A TripleCondenser pairs one Condenser for the entity axis (head and tail
// columns combined) with one for the relation axis. Either side may be the
// identity.
//
// Errors:
//
//   - ErrUnmappedID   an ID outside the renumbering, or one mapped to -1
//   - ErrBadMapping   a hand-built condensation with an invalid codomain
package condense
