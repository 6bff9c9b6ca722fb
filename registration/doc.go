// Package registration validates user-registration requests against the
// account-opening rules of the payments platform.
//
// Validation is pure: [Validator.Validate] runs every rule, accumulates
// human-readable violations in field-declaration order, and returns them as
// data. An empty slice means the request is valid. Nothing here throws,
// short-circuits across sibling blocks, or touches I/O — a nil Address or
// AccountDetails is itself one violation and suppresses only its own
// sub-block.
//
// Enumerated fields (account type, nominee relation) are closed types with
// case-insensitive parse functions; the parse errors carry the exact
// valid-values feedback shown to end users.
//
// # What this package must NOT do
//
//   - Persist anything or call the user store — duplicate checks belong to
//     the Engine.
//   - Hash passwords. It only checks plaintext length.
package registration
