package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles assignable to a user. Contributors are the default; elevation is
// granted by admins through the user update endpoint.
const (
	RoleAdmin              = "admin"
	RoleVerifiedTranslator = "verified_translator"
	RoleContributor        = "contributor"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVerifiedTranslator || role == RoleContributor
}

type User struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	Email       string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role        string         `gorm:"size:50;default:'contributor';not null" json:"role"`
	IsActivated bool           `gorm:"default:false;not null" json:"is_activated"`
	Userdata    datatypes.JSON `gorm:"type:jsonb" json:"userdata,omitempty"`
	Username    *string        `gorm:"size:100" json:"username,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// VerificationCode is a single-use six-digit login code. The code itself is
// stored bcrypt-hashed; comparison happens in the auth service.
type VerificationCode struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	CodeHash  string     `gorm:"size:100;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (code *VerificationCode) BeforeCreate(tx *gorm.DB) (err error) {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	return
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
