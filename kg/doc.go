// SPDX-License-Identifier: MIT

// Package kg provides a small thread-safe knowledge graph and toy link
// prediction models used to study predictive multiplicity on ranking tasks.
//
// A Graph stores entities and labelled triples (head, relation, tail):
//
//   - Entities keep their insertion order; that order is the column order of
//     every score matrix produced by a Model.
//   - Triples are unique; Triples(), Relations(), Heads() and Tails() return
//     sorted results so logs and tables are reproducible.
//   - Separate sync.RWMutex locks guard the entity catalog (muEnt) and the
//     triple store (muTri). Lock order is muEnt → muTri.
//
// Options:
//
//	WithAutoEntities() – AddTriple registers missing endpoints instead of
//	                     returning ErrEntityNotFound.
//
// A Query is a triple with a missing head or tail. A Model "memorises" a
// training graph and scores every entity as the candidate answer of a query:
//
//	score(e) = value(1)   if Fill(e) is a training triple
//	         = value(p)   if e is the element of interest
//	         = value(1-p) otherwise
//	value(x) = 2x + N(μ, σ)
//
// The noise comes from an explicit *rand.Rand; ToyModels returns the four
// reference models (μ, σ) = (0, 0.1), (0, 0.2), (0.1, 0.1), (−0.1, 0.1).
//
// Rank, TopK and HitsAtK evaluate score matrices (queries × entities).
//
// Errors:
//
//	ErrEmptyEntity     – entity ID is the empty string
//	ErrEntityNotFound  – entity is not registered
//	ErrEmptyRelation   – relation label is the empty string
//	ErrDuplicateTriple – triple already present
//	ErrNotFitted       – Model used before Fit
//	ErrLengthMismatch  – parallel slices of different length
//	ErrBadK            – k < 1
package kg
