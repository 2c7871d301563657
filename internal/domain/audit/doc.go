// Package audit provides the append-only trail of billable client actions.
//
// Each entry records who did what to which form, with a free-form structured
// payload whose expected keys depend on the action type. Entries are immutable
// once written. On read, a per-type renderer turns the payload into a
// human-readable observation; rendering always succeeds, degrading to a
// generic sentence when the payload is missing or malformed.
package audit
