package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/notify"
)

type ParkingTypeService interface {
	Create(ctx context.Context, projectID uuid.UUID, name string, hours int) (*model.ParkingType, error)
	Delete(ctx context.Context, projectID, typeID uuid.UUID) error
	List(ctx context.Context, projectID uuid.UUID) ([]model.ParkingType, error)
	Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error
}

type parkingTypeService struct {
	r   repo.ParkingTypeRepo
	hub *notify.Hub
}

func NewParkingTypeService(r repo.ParkingTypeRepo, hub *notify.Hub) ParkingTypeService {
	return &parkingTypeService{r: r, hub: hub}
}

func (s *parkingTypeService) Create(ctx context.Context, projectID uuid.UUID, name string, hours int) (*model.ParkingType, error) {
	if name == "" {
		return nil, errors.New("parking type name is empty")
	}
	if hours < 0 {
		return nil, errors.New("hours must not be negative")
	}

	max, err := s.r.MaxSortOrder(ctx, projectID)
	if err != nil {
		return nil, err
	}

	t := &model.ParkingType{
		ProjectID: projectID,
		Name:      name,
		Hours:     hours,
		SortOrder: max + 1,
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, err
	}

	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableParkingTypes, Action: notify.ActionInsert, RowID: t.ID.String()})
	return t, nil
}

func (s *parkingTypeService) Delete(ctx context.Context, projectID, typeID uuid.UUID) error {
	if err := s.r.Delete(ctx, projectID, typeID); err != nil {
		return err
	}
	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableParkingTypes, Action: notify.ActionDelete, RowID: typeID.String()})
	return nil
}

func (s *parkingTypeService) List(ctx context.Context, projectID uuid.UUID) ([]model.ParkingType, error) {
	return s.r.ListByProject(ctx, projectID)
}

// Reorder takes the complete ordered id list for the project; partial lists
// are rejected before touching the database.
func (s *parkingTypeService) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return errors.New("ordered id list is empty")
	}

	existing, err := s.r.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if len(existing) != len(orderedIDs) {
		return errors.New("ordered id list must cover every parking type")
	}
	known := make(map[uuid.UUID]bool, len(existing))
	for _, t := range existing {
		known[t.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return errors.New("ordered id list contains an unknown parking type")
		}
		// a duplicate would pass the length check while hiding another type
		if seen[id] {
			return errors.New("ordered id list contains a duplicate parking type")
		}
		seen[id] = true
	}

	if err := s.r.Resequence(ctx, projectID, orderedIDs); err != nil {
		return err
	}
	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableParkingTypes, Action: notify.ActionUpdate})
	return nil
}
