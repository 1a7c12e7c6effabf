// Package services provides domain services that work across the workflow
// engines without belonging to a single status domain.
//
// The package includes:
//   - TransitionPlanner: turns the transition table of a workflow into the
//     ordered list of operator actions for a current status, and checks a
//     requested move before it is sent to the owning service
package services
