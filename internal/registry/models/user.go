package models

// User is a person or organization registered with the PID service. The
// namespace reserved at registration becomes the leading segment of every
// global identifier for assets this user owns.
//
// Invariants:
//   - Name is unique across all users
//   - Namespace is unique across all users and contains no whitespace
//   - ID is assigned by the store at creation and never changes
//
// Users are never mutated or deleted after registration.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}
