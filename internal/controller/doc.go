// Package controller runs the four project operations against the remote
// service.
//
// Each operation follows the same skeleton: validate input, take the form's
// busy guard, issue exactly one request, branch on the result and release the
// guard. A successful mutation is followed by one full list reload which
// replaces the cache and re-renders every surface. Failures only produce a
// notice; the cache and the view stay untouched.
//
// Operations report the branch they took as an Outcome so surfaces can react
// (close a form, keep it open) without inspecting errors.
package controller
