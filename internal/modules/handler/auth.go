package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/modules/service"
	"gorm.io/gorm"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SignUpReq struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required"`
	Organization string `json:"organization"`
	Position     string `json:"position"`
}

// SignUp godoc
//
//	@Summary		Register a master account
//	@Description	Create an account that stays locked until another master approves it
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.SignUpReq	true	"Sign-up payload"
//	@Success		201	{object}	serializer.Response{data=model.User}
//	@Router			/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	req := SignUpReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.SignUp(c.Request.Context(), service.SignUpInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Organization: req.Organization,
		Position:     req.Position,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, serializer.Err(http.StatusConflict, "email already registered", err))
			return
		}
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: u, Msg: "awaiting approval"})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Session *service.Session `json:"session"`
	User    interface{}      `json:"user,omitempty"`
	Project interface{}      `json:"project,omitempty"`
}

// Login godoc
//
//	@Summary		Master sign-in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.LoginReq	true	"Login payload"
//	@Success		200	{object}	serializer.Response{data=handler.LoginResp}
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	sess, u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid email or password"))
		case errors.Is(err, service.ErrNotApproved):
			c.JSON(http.StatusForbidden, serializer.ForbiddenErr("account is awaiting approval"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: LoginResp{Session: sess, User: u}})
}

type SiteLoginReq struct {
	Slug     string `json:"slug" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SiteLogin godoc
//
//	@Summary		On-site operator sign-in
//	@Description	Authenticate with the project password; the session is pinned to that project
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.SiteLoginReq	true	"Site login payload"
//	@Success		200	{object}	serializer.Response{data=handler.LoginResp}
//	@Router			/auth/site-login [post]
func (h *AuthHandler) SiteLogin(c *gin.Context) {
	req := SiteLoginReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	sess, p, err := h.svc.SiteLogin(c.Request.Context(), req.Slug, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid project or password"))
		case errors.Is(err, service.ErrSiteLoginDisabled):
			c.JSON(http.StatusForbidden, serializer.ForbiddenErr(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: LoginResp{Session: sess, Project: p}})
}

// GetProfile godoc
//
//	@Summary		Current account profile
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Profile}
//	@Router			/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.UserID == nil {
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr("no account session"))
		return
	}

	p, err := h.svc.GetProfile(c.Request.Context(), *claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("profile not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

type UpdateProfileReq struct {
	FullName     string `json:"full_name" binding:"required"`
	Organization string `json:"organization"`
	Position     string `json:"position"`
}

// UpdateProfile godoc
//
//	@Summary		Update the current account profile
//	@Description	Change name, organization, and position; email is fixed
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.UpdateProfileReq	true	"Profile payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Profile}
//	@Router			/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.UserID == nil {
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr("no account session"))
		return
	}

	req := UpdateProfileReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.UpdateProfile(c.Request.Context(), *claims.UserID, service.ProfileUpdateInput{
		FullName:     req.FullName,
		Organization: req.Organization,
		Position:     req.Position,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("profile not found"))
			return
		}
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// ListMasters godoc
//
//	@Summary		List master accounts
//	@Description	List master accounts with their approval state
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.User}
//	@Router			/auth/masters [get]
func (h *AuthHandler) ListMasters(c *gin.Context) {
	users, err := h.svc.ListMasters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: users})
}

// ApproveMaster godoc
//
//	@Summary		Approve a master account
//	@Tags			auth
//	@Produce		json
//	@Param			userID	path	string	true	"User ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/auth/masters/{userID}/approve [post]
func (h *AuthHandler) ApproveMaster(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid user id", err))
		return
	}

	if err := h.svc.Approve(c.Request.Context(), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "approved"})
}
