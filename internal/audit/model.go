package audit

import "time"

// MaintenanceChange is one audit entry for a resident's base maintenance
// being rewritten by the recalculation engine or reviewed by hand
type MaintenanceChange struct {
	ID           int64     `json:"id"`
	ResidentID   int64     `json:"resident_id"`
	OldBase      float64   `json:"old_base"`
	NewBase      float64   `json:"new_base"`
	TriggerMonth string    `json:"trigger_month"`
	ActorID      int64     `json:"actor_id"`
	CreatedAt    time.Time `json:"created_at"`
}
