package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/infra/blob"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/notify"
	"github.com/parkreg-io/parkreg/internal/pkg/qrimg"
)

type QrCodeCreateInput struct {
	Size    int
	FgColor string
	BgColor string
}

type QrCodeService interface {
	Create(ctx context.Context, projectID uuid.UUID, in QrCodeCreateInput) (*model.QrCode, error)
	Update(ctx context.Context, projectID, id uuid.UUID, in QrCodeCreateInput) (*model.QrCode, error)
	Delete(ctx context.Context, projectID, id uuid.UUID) error
	List(ctx context.Context, projectID uuid.UUID) ([]model.QrCode, error)
	Render(ctx context.Context, projectID, id uuid.UUID) ([]byte, error)
	ShareLink(ctx context.Context, projectID, id uuid.UUID) (string, error)
}

type qrCodeService struct {
	r        repo.QrCodeRepo
	projects repo.ProjectRepo
	blob     *blob.S3Deps
	cfg      *config.Config
	hub      *notify.Hub
}

func NewQrCodeService(r repo.QrCodeRepo, projects repo.ProjectRepo, s3 *blob.S3Deps, cfg *config.Config, hub *notify.Hub) QrCodeService {
	return &qrCodeService{r: r, projects: projects, blob: s3, cfg: cfg, hub: hub}
}

func normalizeQrInput(in QrCodeCreateInput) (QrCodeCreateInput, error) {
	if in.Size == 0 {
		in.Size = 256
	}
	if in.Size < qrimg.MinSize || in.Size > qrimg.MaxSize {
		return in, fmt.Errorf("size must be between %d and %d", qrimg.MinSize, qrimg.MaxSize)
	}
	if in.FgColor == "" {
		in.FgColor = "#000000"
	}
	if in.BgColor == "" {
		in.BgColor = "#ffffff"
	}
	if _, err := qrimg.ParseHexColor(in.FgColor); err != nil {
		return in, err
	}
	if _, err := qrimg.ParseHexColor(in.BgColor); err != nil {
		return in, err
	}
	return in, nil
}

func (s *qrCodeService) Create(ctx context.Context, projectID uuid.UUID, in QrCodeCreateInput) (*model.QrCode, error) {
	in, err := normalizeQrInput(in)
	if err != nil {
		return nil, err
	}

	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	q := &model.QrCode{
		ProjectID: projectID,
		// the visitor page address is frozen into the code at creation
		URL:     fmt.Sprintf("https://%s/%s", s.cfg.Public.Host, p.Slug),
		Size:    in.Size,
		FgColor: in.FgColor,
		BgColor: in.BgColor,
	}
	if err := s.r.Create(ctx, q); err != nil {
		return nil, err
	}

	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableQrCodes, Action: notify.ActionInsert, RowID: q.ID.String()})
	return q, nil
}

func (s *qrCodeService) Update(ctx context.Context, projectID, id uuid.UUID, in QrCodeCreateInput) (*model.QrCode, error) {
	in, err := normalizeQrInput(in)
	if err != nil {
		return nil, err
	}

	q, err := s.r.Get(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	q.Size = in.Size
	q.FgColor = in.FgColor
	q.BgColor = in.BgColor

	if err := s.r.Update(ctx, q); err != nil {
		return nil, err
	}
	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableQrCodes, Action: notify.ActionUpdate, RowID: q.ID.String()})
	return q, nil
}

func (s *qrCodeService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	if err := s.r.Delete(ctx, projectID, id); err != nil {
		return err
	}
	s.hub.Broadcast(ctx, projectID, notify.Event{Table: notify.TableQrCodes, Action: notify.ActionDelete, RowID: id.String()})
	return nil
}

func (s *qrCodeService) List(ctx context.Context, projectID uuid.UUID) ([]model.QrCode, error) {
	return s.r.ListByProject(ctx, projectID)
}

func (s *qrCodeService) Render(ctx context.Context, projectID, id uuid.UUID) ([]byte, error) {
	q, err := s.r.Get(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	return qrimg.Render(q.URL, q.Size, q.FgColor, q.BgColor)
}

// ShareLink uploads the rendered image to object storage and returns a
// pre-signed download URL.
func (s *qrCodeService) ShareLink(ctx context.Context, projectID, id uuid.UUID) (string, error) {
	if s.blob == nil {
		return "", errors.New("object storage is not configured")
	}

	png, err := s.Render(ctx, projectID, id)
	if err != nil {
		return "", err
	}

	key, err := s.blob.UploadPNG(ctx, "qr/"+projectID.String(), png)
	if err != nil {
		return "", err
	}
	expire := time.Duration(s.cfg.S3.PresignExpireSec) * time.Second
	return s.blob.PresignGet(ctx, key, expire)
}
