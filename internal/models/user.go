package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:'user'" json:"role"`
	Status    string    `gorm:"not null;default:'active'" json:"status"`
	Version   int       `gorm:"default:1" json:"-"`
}

// IsEligible reports whether the user takes part in newly created bill splits.
func (u *User) IsEligible() bool {
	return u.Status == StatusActive && u.Role == RoleUser
}
