package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Application review states.
const (
	StatusPending     = "pending"
	StatusApproved    = "approved"
	StatusNeedsReview = "needs_review"
	StatusRejected    = "rejected"
)

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	CarNumber string `gorm:"type:varchar(16);not null" json:"car_number"`
	// Always the last four characters of CarNumber; indexed for status lookup.
	LastFour string `gorm:"type:varchar(4);not null;index" json:"last_four"`

	Status        string     `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	ParkingTypeID *uuid.UUID `gorm:"type:uuid" json:"parking_type_id"`

	// Admin-configured extra form values, field id -> submitted string.
	CustomFields datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"custom_fields"`

	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at"`

	Project     *Project     `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	ParkingType *ParkingType `gorm:"foreignKey:ParkingTypeID;references:ID;constraint:OnDelete:SET NULL;" json:"parking_type,omitempty"`
}

func (Application) TableName() string { return "parking_applications" }

// CustomFieldKeys returns the row's custom-field keys in stable (sorted)
// order.
func (a *Application) CustomFieldKeys() []string {
	if len(a.CustomFields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(a.CustomFields))
	for k := range a.CustomFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StatusLabel maps a stored status to its user-facing label.
func StatusLabel(status string) string {
	switch status {
	case StatusApproved:
		return "승인됨"
	case StatusPending:
		return "대기중"
	case StatusNeedsReview:
		return "확인필요"
	case StatusRejected:
		return "거부됨"
	default:
		return status
	}
}
