package model

import (
	"time"

	"github.com/google/uuid"
)

type QrCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	// Derived from the project slug at creation time; not re-derived on rename.
	URL string `gorm:"type:varchar(256);not null" json:"url"`

	Size    int    `gorm:"not null;default:256" json:"size"`
	FgColor string `gorm:"type:varchar(16);not null;default:#000000" json:"fg_color"`
	BgColor string `gorm:"type:varchar(16);not null;default:#ffffff" json:"bg_color"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (QrCode) TableName() string { return "qr_codes" }
