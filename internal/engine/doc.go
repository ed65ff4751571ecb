// Package engine drives time-based changes to entity vitals.
//
// ARCHITECTURAL RULE: a recovery run owns no state of its own besides its
// handle. It mutates the *health.Points it was given and nothing else, and it
// only looks at its context while suspended in a Delay.
package engine
