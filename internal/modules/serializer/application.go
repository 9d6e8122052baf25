package serializer

import (
	"time"

	"github.com/parkreg-io/parkreg/internal/modules/model"
)

// ApplicationStatus is the visitor-facing view of a lookup result.
type ApplicationStatus struct {
	CarNumber   string     `json:"car_number"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"status_label"`
	ParkingType string     `json:"parking_type,omitempty"`
	Hours       int        `json:"hours,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

func BuildApplicationStatus(a *model.Application) ApplicationStatus {
	out := ApplicationStatus{
		CarNumber:   a.CarNumber,
		Status:      a.Status,
		StatusLabel: model.StatusLabel(a.Status),
		CreatedAt:   a.CreatedAt,
		ApprovedAt:  a.ApprovedAt,
	}
	if a.ParkingType != nil {
		out.ParkingType = a.ParkingType.Name
		out.Hours = a.ParkingType.Hours
	}
	return out
}
