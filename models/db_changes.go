package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

// LayoutChange is appended in the same transaction as every committed salon
// mutation. The change monitor drains unprocessed rows to tell open editors
// and subscribers that their copy is stale.
type LayoutChange struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RestaurantID uint           `gorm:"not null;index:idx_tenant_processed" json:"restaurant_id"`
	FloorID      *string        `gorm:"type:varchar(36)" json:"floor_id,omitempty"`
	Entity       string         `gorm:"type:varchar(20);not null" json:"entity"`
	EntityID     string         `gorm:"type:varchar(36)" json:"entity_id"`
	ActionType   string         `gorm:"type:varchar(10);not null" json:"action_type"`
	Payload      datatypes.JSON `json:"payload,omitempty"`
	ChangedAt    time.Time      `gorm:"not null" json:"changed_at"`
	Processed    bool           `gorm:"default:false;index:idx_tenant_processed" json:"processed"`
}
