package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/gastro-os/floorplan"
	"gorm.io/gorm"
)

type Floor struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Order        int       `gorm:"column:sort_order;not null;default:1" json:"order"`
	GridWidth    int       `gorm:"not null;default:1200" json:"grid_width"`
	GridHeight   int       `gorm:"not null;default:800" json:"grid_height"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Floor) TableName() string { return "salon_floors" }

func (f *Floor) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (f Floor) ToLayout() floorplan.Floor {
	return floorplan.Floor{
		ID:         f.ID,
		Name:       f.Name,
		Order:      f.Order,
		GridWidth:  f.GridWidth,
		GridHeight: f.GridHeight,
	}
}
