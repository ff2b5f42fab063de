// Package credstore persists the bearer token and cached identity snapshot
// between client sessions.
//
// Three implementations: a JSON file (the CLI default), Redis for shared or
// headless use, and an in-memory store for tests. All hold the same two
// logical entries under fixed names and clear both together.
package credstore
