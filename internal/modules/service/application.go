package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/parkreg-io/parkreg/internal/pkg/export"
	"github.com/parkreg-io/parkreg/internal/pkg/fields"
	"github.com/parkreg-io/parkreg/internal/pkg/plate"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// EventPublisher is the outbound message-queue surface used by services.
// A nil publisher disables external event fanout without disabling writes.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, data interface{}) error
}

var (
	ErrInvalidPlate    = errors.New("차량번호 형식이 올바르지 않습니다")
	ErrInvalidLastFour = errors.New("차량번호 뒷 4자리를 입력해주세요")
)

type ApplicationService interface {
	Submit(ctx context.Context, projectID uuid.UUID, carNumber string, custom map[string]string) (*model.Application, error)
	LookupStatus(ctx context.Context, projectID uuid.UUID, lastFour string) (*model.Application, error)
	List(ctx context.Context, projectID uuid.UUID) ([]model.Application, error)
	Assign(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, typeID uuid.UUID) (string, error)
	Reject(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error
	Delete(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error
	ExportCSV(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]byte, error)
	ExportXLSX(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]byte, error)
}

type applicationService struct {
	r        repo.ApplicationRepo
	typeRepo repo.ParkingTypeRepo
	settings repo.PageSettingRepo
	hub      *notify.Hub
	mq       EventPublisher
	log      *zap.Logger
}

func NewApplicationService(
	r repo.ApplicationRepo,
	typeRepo repo.ParkingTypeRepo,
	settings repo.PageSettingRepo,
	hub *notify.Hub,
	mq EventPublisher,
	log *zap.Logger,
) ApplicationService {
	return &applicationService{r: r, typeRepo: typeRepo, settings: settings, hub: hub, mq: mq, log: log}
}

// publish is best effort; queue trouble never fails the originating write.
func (s *applicationService) publish(ctx context.Context, routingKey string, data interface{}) {
	if s.mq == nil {
		return
	}
	if err := s.mq.PublishJSON(ctx, routingKey, data); err != nil {
		s.log.Warn("publish event failed", zap.String("routingKey", routingKey), zap.Error(err))
	}
}

func (s *applicationService) Submit(ctx context.Context, projectID uuid.UUID, carNumber string, custom map[string]string) (*model.Application, error) {
	carNumber = strings.TrimSpace(carNumber)
	if !plate.Valid(carNumber) {
		return nil, ErrInvalidPlate
	}

	settings, err := loadSettings(ctx, s.settings, projectID)
	if err != nil {
		return nil, err
	}

	stored := datatypes.JSONMap{}
	if settings[model.SettingCustomFieldsEnabled] == "true" {
		cfg := fields.Parse(settings[model.SettingCustomFieldsConfig])
		if err := fields.ValidateValues(cfg, custom); err != nil {
			return nil, err
		}
		// only schema-defined fields are stored
		for _, f := range cfg.Fields {
			if v, ok := custom[f.ID]; ok && strings.TrimSpace(v) != "" {
				stored[f.ID] = v
			}
		}
	}

	a := &model.Application{
		ProjectID:    projectID,
		CarNumber:    carNumber,
		LastFour:     plate.LastFour(carNumber),
		Status:       model.StatusPending,
		CustomFields: stored,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}

	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableApplications, Action: notify.ActionInsert, RowID: a.ID.String()})
	s.publish(ctx, "application.created", a)
	return a, nil
}

func (s *applicationService) LookupStatus(ctx context.Context, projectID uuid.UUID, lastFour string) (*model.Application, error) {
	lastFour = strings.TrimSpace(lastFour)
	if !plate.ValidLastFour(lastFour) {
		return nil, ErrInvalidLastFour
	}
	return s.r.LatestByLastFour(ctx, projectID, lastFour)
}

func (s *applicationService) List(ctx context.Context, projectID uuid.UUID) ([]model.Application, error) {
	return s.r.ListByProject(ctx, projectID)
}

// Assign applies one parking type to the id set. Reserved type names park
// the rows in needs_review without an approval timestamp; every other type
// approves and stamps approved_at. The returned message tells the reviewer
// which of the three outcomes happened.
func (s *applicationService) Assign(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, typeID uuid.UUID) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("application id list is empty")
	}

	t, err := s.typeRepo.Get(ctx, typeID)
	if err != nil {
		return "", err
	}
	if t.ProjectID != projectID {
		return "", errors.New("parking type belongs to another project")
	}

	upd := repo.StatusUpdate{ParkingTypeID: &t.ID}
	var msg string
	switch {
	case t.Name == model.ParkingTypeNoPlate:
		upd.Status = model.StatusNeedsReview
		msg = "차량번호가 없어 확인이 필요한 건으로 이동했습니다"
	case t.Name == model.ParkingTypeReject:
		upd.Status = model.StatusNeedsReview
		msg = "거부 검토 대상으로 이동했습니다"
	default:
		now := time.Now()
		upd.Status = model.StatusApproved
		upd.ApprovedAt = &now
		msg = "주차권이 배정되었습니다"
	}

	if _, err := s.r.UpdateStatus(ctx, projectID, ids, upd); err != nil {
		return "", err
	}

	for _, id := range ids {
		s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableApplications, Action: notify.ActionUpdate, RowID: id.String()})
	}
	s.publish(ctx, "application.assigned", map[string]interface{}{
		"project_id":      projectID,
		"application_ids": ids,
		"parking_type_id": typeID,
		"status":          upd.Status,
	})
	return msg, nil
}

func (s *applicationService) Reject(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return errors.New("application id list is empty")
	}

	// rejection flips the status only; an earlier assignment stays on
	// record so a re-approval is cheap to audit
	if _, err := s.r.SetStatus(ctx, projectID, ids, model.StatusRejected); err != nil {
		return err
	}

	for _, id := range ids {
		s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableApplications, Action: notify.ActionUpdate, RowID: id.String()})
	}
	s.publish(ctx, "application.rejected", map[string]interface{}{
		"project_id":      projectID,
		"application_ids": ids,
	})
	return nil
}

func (s *applicationService) Delete(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return errors.New("application id list is empty")
	}

	if _, err := s.r.DeleteByIDs(ctx, projectID, ids); err != nil {
		return err
	}

	for _, id := range ids {
		s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableApplications, Action: notify.ActionDelete, RowID: id.String()})
	}
	s.publish(ctx, "application.deleted", map[string]interface{}{
		"project_id":      projectID,
		"application_ids": ids,
	})
	return nil
}

func (s *applicationService) selection(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]model.Application, error) {
	if len(ids) == 0 {
		return s.r.ListByProject(ctx, projectID)
	}
	return s.r.ListByIDs(ctx, projectID, ids)
}

func (s *applicationService) ExportCSV(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]byte, error) {
	apps, err := s.selection(ctx, projectID, ids)
	if err != nil {
		return nil, err
	}
	return export.CSV(apps)
}

func (s *applicationService) ExportXLSX(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]byte, error) {
	apps, err := s.selection(ctx, projectID, ids)
	if err != nil {
		return nil, err
	}
	return export.XLSX(apps)
}
