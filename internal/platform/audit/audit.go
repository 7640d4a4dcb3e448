// Package audit defines the registry's audit event shape and publishers.
// Registrations are always logged as structured audit records; a publisher
// additionally fans them out to an external stream when configured.
package audit

import (
	"context"
	"time"
)

// Action names for registry audit events.
const (
	ActionUserCreated      = "user_created"
	ActionAssetTypeCreated = "asset_type_created"
	ActionAssetRegistered  = "asset_registered"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	// Subject identifies the affected entity: a user id, asset type id,
	// or computed global identifier.
	Subject   string `json:"subject"`
	RequestID string `json:"request_id,omitempty"`
}

// Publisher fans audit events out to an external sink. Emit is best-effort
// for this registry: failures are logged by the caller, never surfaced to
// the registering client.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
