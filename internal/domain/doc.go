// Package domain contains the core entities of the Verdant progression
// engine: the per-user state containers (progression, learning, discovery,
// achievements, settings), the species catalog, and the user account entity.
//
// Entities here hold state and structural invariants only. The time-based
// and randomized algorithms that mutate them live in the subpackages
// progression, review, encounter and achievement, which operate on these
// types as explicit arguments so they can be tested with fresh instances.
package domain
