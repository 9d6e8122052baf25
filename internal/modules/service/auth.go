package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account is awaiting approval")
	ErrSiteLoginDisabled  = errors.New("on-site login is not enabled for this project")
)

type SignUpInput struct {
	Email        string
	Password     string
	FullName     string
	Organization string
	Position     string
}

type ProfileUpdateInput struct {
	FullName     string
	Organization string
	Position     string
}

type Session struct {
	Token    string    `json:"token"`
	ExpireAt time.Time `json:"expire_at"`
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*Session, *model.User, error)
	SiteLogin(ctx context.Context, slug, password string) (*Session, *model.Project, error)
	ListMasters(ctx context.Context) ([]model.User, error)
	Approve(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (*model.Profile, error)
}

type authService struct {
	users    repo.UserRepo
	projects repo.ProjectRepo
	cfg      *config.Config
}

func NewAuthService(users repo.UserRepo, projects repo.ProjectRepo, cfg *config.Config) AuthService {
	return &authService{users: users, projects: projects, cfg: cfg}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, errors.New("invalid email address")
	}
	if len(in.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{Email: in.Email, PasswordHash: string(hash)}
	p := &model.Profile{
		FullName:     in.FullName,
		Organization: in.Organization,
		Position:     in.Position,
		Email:        in.Email,
	}
	// accounts start unapproved and cannot sign in until flipped
	role := &model.Role{Role: model.RoleMaster, Approved: false}

	if err := s.users.CreateWithProfileAndRole(ctx, u, p, role); err != nil {
		return nil, err
	}
	u.Profile = p
	u.Role = role
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	role, err := s.users.GetRole(ctx, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotApproved
		}
		return nil, nil, err
	}
	if role.Role != model.RoleMaster || !role.Approved {
		return nil, nil, ErrNotApproved
	}

	tokenStr, expireAt, err := token.GenerateMaster(s.cfg.Auth.JWTSecret, u.ID, s.cfg.Auth.TokenExpireHour)
	if err != nil {
		return nil, nil, err
	}
	u.Role = role
	return &Session{Token: tokenStr, ExpireAt: expireAt}, u, nil
}

// SiteLogin authenticates an on-site operator against the project password.
// The issued token is pinned to the one project.
func (s *authService) SiteLogin(ctx context.Context, slug, password string) (*Session, *model.Project, error) {
	p, err := s.projects.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !p.HasPassword() {
		return nil, nil, ErrSiteLoginDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(*p.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokenStr, expireAt, err := token.GenerateSite(s.cfg.Auth.JWTSecret, p.ID, s.cfg.Auth.TokenExpireHour)
	if err != nil {
		return nil, nil, err
	}
	return &Session{Token: tokenStr, ExpireAt: expireAt}, p, nil
}

func (s *authService) ListMasters(ctx context.Context) ([]model.User, error) {
	return s.users.ListMasters(ctx)
}

func (s *authService) Approve(ctx context.Context, userID uuid.UUID) error {
	n, err := s.users.ApproveRole(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (*model.Profile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return nil, errors.New("이름을 입력해주세요")
	}
	return s.users.UpdateProfile(ctx, userID, in.FullName, strings.TrimSpace(in.Organization), strings.TrimSpace(in.Position))
}
