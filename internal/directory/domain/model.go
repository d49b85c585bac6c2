package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	default:
		return false
	}
}

// User is the seeded directory record. Avatar and NotifySMS are nullable
// on the wire, so they stay pointers all the way down.
type User struct {
	ID                    int64          `gorm:"primaryKey"`
	Username              string         `gorm:"type:text;not null"`
	Email                 string         `gorm:"type:text;not null"`
	Role                  string         `gorm:"type:text;not null;index"`
	FirstName             string         `gorm:"type:text;not null"`
	LastName              string         `gorm:"type:text;not null"`
	Avatar                *string        `gorm:"type:text"`
	NotifyEmail           bool           `gorm:"not null;default:false"`
	NotifyPush            bool           `gorm:"not null;default:false"`
	NotifySMS             *bool
	Theme                 string         `gorm:"type:text;not null"`
	Language              string         `gorm:"type:text;not null"`
	SubscriptionPlan      string         `gorm:"type:text;not null"`
	SubscriptionStatus    string         `gorm:"type:text;not null"`
	SubscriptionExpiresAt time.Time      `gorm:"not null"`
	SubscriptionFeatures  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt             time.Time      `gorm:"not null"`
	LastLoginAt           time.Time      `gorm:"not null"`
	LoginCount            int64          `gorm:"not null;default:0"`
	IsVerified            bool           `gorm:"not null;default:false"`
}

func (User) TableName() string { return "users" }
