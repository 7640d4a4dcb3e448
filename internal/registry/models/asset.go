package models

// Asset is one artifact owned by exactly one user. The store assigns ID, a
// strictly increasing sequence number unique across the whole ledger. The
// local identifier is opaque and meaningful only within the owner's own
// system (a database key, file path, URI); it may be absent.
//
// The (owner, type, local id) triple is the natural key for local→global
// lookup but is deliberately not unique; lookups resolve duplicates to the
// lowest sequence number.
type Asset struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	AssetTypeID string  `json:"asset_type"`
	LocalID     *string `json:"local_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GlobalID composes the asset's global identifier from the owner's current
// namespace. It is always derived at read time, never stored, so it can
// never go stale against the owner record.
func (a *Asset) GlobalID(namespace string) string {
	return ComposeGlobalID(namespace, a.AssetTypeID, a.ID)
}

// AssetDetails pairs an asset with its computed global identifier for
// responses.
type AssetDetails struct {
	*Asset
	GlobalID string `json:"global_id"`
}
