// Package refindex is the read-only reference query layer over the business
// collections' image-bearing fields.
//
// An asset is "orphaned" iff no registered collection references its public
// id. Each collection registers a Checker that knows its own field shape
// (single column, pair of columns, or array-embedded gallery); the Index fans
// out to all checkers in parallel and OR-reduces the answers.
//
// # Fail-safe bias
//
// The destructive consumer of this index is asset cleanup. A collection that
// cannot be queried therefore defaults to "assume referenced": skipping a
// deletable asset costs storage, deleting a referenced one loses data.
// Strict mode inverts this for callers that must not act on a partial view
// (the cleanup planner runs strict and aborts instead of guessing).
package refindex
