// Package input holds the per-frame input snapshot the boundary reads
// and the command queue that gates cursor-state writes.
//
// The split models two tiers of access: reading input requires only the
// snapshot reference and never blocks or mutates; changing cursor
// behavior requires render-thread authority, so those writes cross the
// boundary as queued commands acknowledged on enqueue, not on effect.
package input
