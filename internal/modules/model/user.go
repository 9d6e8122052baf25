package model

import (
	"time"

	"github.com/google/uuid"
)

const RoleMaster = "master"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"profile,omitempty"`
	Role    *Role    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"role,omitempty"`
}

func (User) TableName() string { return "users" }

type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName     string    `gorm:"type:varchar(64)" json:"full_name"`
	Organization string    `gorm:"type:varchar(128)" json:"organization"`
	Position     string    `gorm:"type:varchar(64)" json:"position"`
	Email        string    `gorm:"type:varchar(128)" json:"email"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// Role is at most one row per user. Unapproved master accounts cannot
// complete sign-in.
type Role struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Role     string    `gorm:"type:varchar(16);not null" json:"role"`
	Approved bool      `gorm:"not null;default:false" json:"approved"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string { return "user_roles" }
