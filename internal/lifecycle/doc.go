// Package lifecycle enforces the legal-transition graph for an application's
// status and mediates who may invoke which edge.
//
// The edge set is an explicit finite map keyed by (status, role) so the legal
// transitions are auditable in one place. Every transition request, whichever
// view initiated it, routes through Engine.Transition so local validation is
// applied uniformly before anything reaches the backend.
package lifecycle
