package models

// AssetType is a category of asset (e.g. "dataset", "service") shared by all
// users. The identifier is used verbatim as the middle segment of global
// identifiers, so it must not contain whitespace.
//
// Asset types are immutable after registration. Re-registering the same
// (id, description) pair is idempotent; the same id with a different
// description is a conflict.
type AssetType struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
