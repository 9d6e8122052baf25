package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestParkingTypeService_Create(t *testing.T) {
	projectID := uuid.New()

	t.Run("appends after the current last position", func(t *testing.T) {
		r := new(MockParkingTypeRepo)
		svc := NewParkingTypeService(r, notify.NewHub(nil))

		r.On("MaxSortOrder", mock.Anything, projectID).Return(3, nil)
		r.On("Create", mock.Anything, mock.MatchedBy(func(tp *model.ParkingType) bool {
			return tp.SortOrder == 4 && tp.Name == "방문주차" && tp.Hours == 2
		})).Return(nil)

		tp, err := svc.Create(context.Background(), projectID, "방문주차", 2)
		assert.NoError(t, err)
		assert.Equal(t, 4, tp.SortOrder)
		r.AssertExpectations(t)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc := NewParkingTypeService(new(MockParkingTypeRepo), notify.NewHub(nil))
		_, err := svc.Create(context.Background(), projectID, "", 1)
		assert.Error(t, err)
	})

	t.Run("negative hours rejected", func(t *testing.T) {
		svc := NewParkingTypeService(new(MockParkingTypeRepo), notify.NewHub(nil))
		_, err := svc.Create(context.Background(), projectID, "방문주차", -1)
		assert.Error(t, err)
	})
}

func TestParkingTypeService_Reorder(t *testing.T) {
	projectID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	existing := []model.ParkingType{
		{ID: a, ProjectID: projectID, SortOrder: 1},
		{ID: b, ProjectID: projectID, SortOrder: 2},
		{ID: c, ProjectID: projectID, SortOrder: 3},
	}

	t.Run("full permutation is applied", func(t *testing.T) {
		r := new(MockParkingTypeRepo)
		svc := NewParkingTypeService(r, notify.NewHub(nil))

		order := []uuid.UUID{c, a, b}
		r.On("ListByProject", mock.Anything, projectID).Return(existing, nil)
		r.On("Resequence", mock.Anything, projectID, order).Return(nil)

		assert.NoError(t, svc.Reorder(context.Background(), projectID, order))
		r.AssertExpectations(t)
	})

	t.Run("partial list rejected", func(t *testing.T) {
		r := new(MockParkingTypeRepo)
		svc := NewParkingTypeService(r, notify.NewHub(nil))

		r.On("ListByProject", mock.Anything, projectID).Return(existing, nil)

		err := svc.Reorder(context.Background(), projectID, []uuid.UUID{c, a})
		assert.Error(t, err)
		r.AssertNotCalled(t, "Resequence", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id rejected", func(t *testing.T) {
		r := new(MockParkingTypeRepo)
		svc := NewParkingTypeService(r, notify.NewHub(nil))

		r.On("ListByProject", mock.Anything, projectID).Return(existing, nil)

		err := svc.Reorder(context.Background(), projectID, []uuid.UUID{c, a, uuid.New()})
		assert.Error(t, err)
		r.AssertNotCalled(t, "Resequence", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		r := new(MockParkingTypeRepo)
		svc := NewParkingTypeService(r, notify.NewHub(nil))

		// same length as the project's type list, but one id repeats
		two := []model.ParkingType{
			{ID: a, ProjectID: projectID, SortOrder: 1},
			{ID: b, ProjectID: projectID, SortOrder: 2},
		}
		r.On("ListByProject", mock.Anything, projectID).Return(two, nil)

		err := svc.Reorder(context.Background(), projectID, []uuid.UUID{a, a})
		assert.Error(t, err)
		r.AssertNotCalled(t, "Resequence", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		svc := NewParkingTypeService(new(MockParkingTypeRepo), notify.NewHub(nil))
		assert.Error(t, svc.Reorder(context.Background(), projectID, nil))
	})
}
