package models

import (
	"time"
)

// User represents a shopper or staff account.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"size:20;default:user" json:"role"` // user, admin, staff, delivery
	AvatarURL     string    `json:"avatar_url,omitempty"`
	PointsBalance int       `gorm:"default:0" json:"points_balance"`
	InviteCode    string    `gorm:"uniqueIndex;size:12;not null" json:"invite_code"`
	InvitedByID   *uint     `gorm:"index" json:"invited_by_id,omitempty"`
	InvitedBy     *User     `gorm:"foreignKey:InvitedByID" json:"invited_by,omitempty"`

	// One-time bonus flags. Each is claimable exactly once.
	ProfileCompleted bool `gorm:"default:false" json:"profile_completed"`
	FirstTryOn       bool `gorm:"default:false" json:"first_try_on"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
