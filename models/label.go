package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/gastro-os/floorplan"
	"gorm.io/gorm"
)

// Label is a free text marker on the floor plan ("Barra", "Terraza").
type Label struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	FloorID      *string   `gorm:"type:varchar(36);index" json:"floor_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	PosX         int       `gorm:"not null;default:0" json:"pos_x"`
	PosY         int       `gorm:"not null;default:0" json:"pos_y"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Label) TableName() string { return "salon_labels" }

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (l Label) ToLayout() floorplan.Label {
	return floorplan.Label{
		ID:      l.ID,
		Name:    l.Name,
		X:       l.PosX,
		Y:       l.PosY,
		FloorID: l.FloorID,
	}
}
