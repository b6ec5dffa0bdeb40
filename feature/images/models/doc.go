// Package models defines the engine's read-only projections of the business
// collections (restaurants, menus, menu items, profiles).
//
// Only identity and image-bearing columns are mapped; the CRUD service owns
// the full schemas. The gallery column is a JSON array kept as text so the
// reference checkers can match array-embedded public ids without a JSON
// column type dependency.
package models
