package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/modules/service"
	"github.com/parkreg-io/parkreg/internal/pkg/fields"
	"gorm.io/gorm"
)

// PublicHandler serves the visitor surface: the page configuration, the
// registration form and the status lookup. None of it requires a session.
type PublicHandler struct {
	projects service.ProjectService
	apps     service.ApplicationService
	settings service.PageSettingService
}

func NewPublicHandler(projects service.ProjectService, apps service.ApplicationService, settings service.PageSettingService) *PublicHandler {
	return &PublicHandler{projects: projects, apps: apps, settings: settings}
}

func (h *PublicHandler) project(c *gin.Context) (*model.Project, bool) {
	p, err := h.projects.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		} else {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return nil, false
	}
	return p, true
}

type PageConfigResp struct {
	ProjectID    string            `json:"project_id"`
	ProjectName  string            `json:"project_name"`
	Slug         string            `json:"slug"`
	Settings     map[string]string `json:"settings"`
	CustomFields []fields.Field    `json:"custom_fields"`
}

// GetPageConfig godoc
//
//	@Summary		Get visitor page configuration
//	@Description	Resolve a project by slug and return its page settings and form schema
//	@Tags			public
//	@Produce		json
//	@Param			slug	path		string	true	"Project slug"
//	@Success		200		{object}	serializer.Response{data=handler.PageConfigResp}
//	@Router			/p/{slug}/config [get]
func (h *PublicHandler) GetPageConfig(c *gin.Context) {
	p, ok := h.project(c)
	if !ok {
		return
	}

	settings, err := h.settings.Load(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	resp := PageConfigResp{
		ProjectID:    p.ID.String(),
		ProjectName:  p.Name,
		Slug:         p.Slug,
		Settings:     settings,
		CustomFields: []fields.Field{},
	}
	if settings[model.SettingCustomFieldsEnabled] == "true" {
		resp.CustomFields = fields.Parse(settings[model.SettingCustomFieldsConfig]).Fields
	}

	c.JSON(http.StatusOK, serializer.Response{Data: resp})
}

type SubmitApplicationReq struct {
	CarNumber    string            `json:"car_number" binding:"required"`
	CustomFields map[string]string `json:"custom_fields"`
}

// SubmitApplication godoc
//
//	@Summary		Submit a parking application
//	@Description	Register a vehicle for the project behind the slug
//	@Tags			public
//	@Accept			json
//	@Produce		json
//	@Param			slug	path	string	true	"Project slug"
//	@Param			payload	body	handler.SubmitApplicationReq	true	"Application payload"
//	@Success		201	{object}	serializer.Response{data=model.Application}
//	@Router			/p/{slug}/applications [post]
func (h *PublicHandler) SubmitApplication(c *gin.Context) {
	req := SubmitApplicationReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, ok := h.project(c)
	if !ok {
		return
	}

	a, err := h.apps.Submit(c.Request.Context(), p.ID, req.CarNumber, req.CustomFields)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlate) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
			return
		}
		// required-field violations carry the field label
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: a})
}

type LookupStatusReq struct {
	LastFour string `form:"last_four" binding:"required"`
}

// LookupStatus godoc
//
//	@Summary		Look up application status
//	@Description	Return the most recent application matching the last four digits
//	@Tags			public
//	@Produce		json
//	@Param			slug		path		string	true	"Project slug"
//	@Param			last_four	query		string	true	"Last four digits of the plate"
//	@Success		200			{object}	serializer.Response{data=serializer.ApplicationStatus}
//	@Router			/p/{slug}/status [get]
func (h *PublicHandler) LookupStatus(c *gin.Context) {
	req := LookupStatusReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, ok := h.project(c)
	if !ok {
		return
	}

	a, err := h.apps.LookupStatus(c.Request.Context(), p.ID, req.LastFour)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLastFour):
			c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("등록된 차량이 없습니다"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildApplicationStatus(a)})
}
