package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/modules/service"
	"gorm.io/gorm"
)

// ProjectHandler manages projects; every route behind it is master-only.
type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

type CreateProjectReq struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Password    string `json:"password"`
	Description string `json:"description"`
}

// CreateProject godoc
//
//	@Summary		Create a project
//	@Description	Create a project with its default page settings
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"Project payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), service.ProjectCreateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Password:    req.Password,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, serializer.Err(http.StatusConflict, "slug already in use", err))
			return
		}
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: p})
}

// GetProject godoc
//
//	@Summary		Get a project
//	@Tags			project
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{projectID} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), middleware.GetProjectID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

type UpdateProjectReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Password    *string `json:"password"`
}

// UpdateProject godoc
//
//	@Summary		Update a project
//	@Description	Update name, description or the on-site password; empty password disables on-site login
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.UpdateProjectReq	true	"Update payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/projects/{projectID} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	req := UpdateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), middleware.GetProjectID(c), service.ProjectUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
			return
		}
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// DeleteProject godoc
//
//	@Summary		Delete a project
//	@Description	Delete a project and everything under it
//	@Tags			project
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.GetProjectID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
