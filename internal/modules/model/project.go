package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(128);not null" json:"name"`
	Slug string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`

	// bcrypt hash; nil means on-site login is disabled for this project
	Password    *string `gorm:"type:varchar(128)" json:"-"`
	Description *string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> ParkingType
	ParkingTypes []ParkingType `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"parking_types,omitempty"`

	// Project <-> Application
	Applications []Application `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"applications,omitempty"`

	// Project <-> PageSetting
	PageSettings []PageSetting `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"page_settings,omitempty"`

	// Project <-> QrCode
	QrCodes []QrCode `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"qr_codes,omitempty"`
}

func (Project) TableName() string { return "projects" }

// HasPassword reports whether on-site login is configured.
func (p *Project) HasPassword() bool {
	return p.Password != nil && *p.Password != ""
}
