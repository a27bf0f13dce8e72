// Package service contains the application use cases over the vocabulary
// stores. It orchestrates interactions between domain objects and the
// repositories defined in internal/store, and owns every transactional
// boundary that spans more than one store call.
//
// Subpackages:
//
//   - transfer: delimited-text import and export of cards.
//   - card_review: quiz sessions and weak-card repetition.
//
// The UI layer keeps the current language and dictionary selection itself and
// passes it in as plain ids; ResolveSelection validates those ids and falls
// back to the bootstrap defaults.
package service
