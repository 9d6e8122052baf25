package model

import (
	"time"

	"github.com/google/uuid"
)

// Reserved parking type names. Assigning one of these never approves the
// application; it parks the row in needs_review instead.
const (
	ParkingTypeNoPlate = "번호없음"
	ParkingTypeReject  = "거부"
)

type ParkingType struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Name      string    `gorm:"type:varchar(64);not null" json:"name"`
	Hours     int       `gorm:"not null;default:0" json:"hours"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ParkingType) TableName() string { return "parking_types" }

// IsReserved reports whether the name carries sentinel semantics.
func (t *ParkingType) IsReserved() bool {
	return t.Name == ParkingTypeNoPlate || t.Name == ParkingTypeReject
}
