package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/gastro-os/floorplan"
	"gorm.io/gorm"
)

// Table is a mesa on the salon floor plan.
type Table struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	FloorID      *string   `gorm:"type:varchar(36);index" json:"floor_id"`
	Name         string    `gorm:"type:varchar(50);not null" json:"name"`
	Capacity     int       `gorm:"not null;default:4" json:"capacity"`
	Status       string    `gorm:"type:varchar(20);not null;default:'free'" json:"status"`
	PosX         int       `gorm:"not null;default:0" json:"pos_x"`
	PosY         int       `gorm:"not null;default:0" json:"pos_y"`
	Width        int       `gorm:"not null;default:72" json:"width"`
	Height       int       `gorm:"not null;default:72" json:"height"`
	Shape        string    `gorm:"type:varchar(10);not null;default:'rect'" json:"shape"`
	GroupID      *string   `gorm:"type:varchar(36);index" json:"group_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t Table) ToLayout() floorplan.Table {
	return floorplan.Table{
		ID:       t.ID,
		Name:     t.Name,
		Capacity: t.Capacity,
		Status:   floorplan.Status(t.Status),
		X:        t.PosX,
		Y:        t.PosY,
		Width:    t.Width,
		Height:   t.Height,
		Shape:    floorplan.Shape(t.Shape),
		GroupID:  t.GroupID,
		FloorID:  t.FloorID,
	}
}
