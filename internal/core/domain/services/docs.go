// Package services holds the stateless decision logic of the wizard resolvers.
//
// The services never call remote systems. They look at the draft and the
// read models they are given and return a plan; the command handlers carry
// the plan out against the remote services.
//
// Available services:
//   - BoxReconciler: decides whether a package binds to, updates or creates a box
//   - ContactPlanner: decides whether a contact is skipped, created or updated
package services
