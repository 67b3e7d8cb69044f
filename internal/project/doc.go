// Package project holds the client-side replica of the remote project list.
//
// Project Representation:
//
// Each project is a unit of user-requested generated work with:
//   - Opaque ID assigned by the remote service
//   - Display name (may be empty while generation is starting)
//   - Command describing the work
//   - Status reported by the remote service
//   - Optional GitHub URL of the generated source
//
// Cache:
//
// The Cache is the single source of truth for the list shown to the user.
// It is only ever replaced wholesale from a successful list response:
//   - ReplaceAll: overwrite the collection, preserving server order
//   - Current: read a copy of the collection
//   - Find: look up one record by ID
//
// There is no per-record update. Mutations on the remote service are
// followed by a full reload.
package project
