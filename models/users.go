package models

import "time"

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleWaiter  = "waiter"
	RoleCook    = "cook"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string     `gorm:"type:varchar(255); not null" json:"name"`
	Email        string     `gorm:"type:varchar(255); unique;not null" json:"email"`
	Password     string     `gorm:"type:varchar(255); not null" json:"-"`
	Role         string     `gorm:"type:varchar(20); not null" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NormalizeRole maps unknown roles to waiter, the least privileged one.
func NormalizeRole(role string) string {
	switch role {
	case RoleOwner, RoleManager, RoleWaiter, RoleCook:
		return role
	}
	return RoleWaiter
}
