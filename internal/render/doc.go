// Package render turns the project cache into a displayable view.
//
// Shaping is pure: Shape maps a snapshot of projects to a View holding rows,
// aggregate counters and the empty-state switch. A Renderer reads the cache,
// shapes it and applies the result to every attached Surface. Render is
// idempotent and may be called any number of times.
package render
