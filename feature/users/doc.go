// Package users keeps the operator allow list.
//
// Only allowed users may manage monitoring tasks. Re-adding an existing user
// is a no-op, and owners carry a flag so clients can distinguish them from
// regular operators.
package users
