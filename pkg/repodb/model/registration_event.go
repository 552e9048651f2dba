package model

import "time"

const (
	ActionRegistered   = "registered"
	ActionUnregistered = "unregistered"
)

// RegistrationEvent records a single provider registration or unregistration
// against the registry. Events are append-only diagnostics; the registry never
// reads them back to rebuild state.
type RegistrationEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      string    `json:"uuid"`
	PluginID  string    `json:"plugin_id"`
	Action    string    `json:"action"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

func (RegistrationEvent) TableName() string {
	return "registration_events"
}
