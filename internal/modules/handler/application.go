package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/modules/service"
	"gorm.io/gorm"
)

// ApplicationHandler is the admin review surface.
type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// ListApplications godoc
//
//	@Summary		List applications
//	@Description	List a project's applications, newest first
//	@Tags			application
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Application}
//	@Router			/projects/{projectID}/applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.svc.List(c.Request.Context(), middleware.GetProjectID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: apps})
}

type AssignReq struct {
	ApplicationIDs []uuid.UUID `json:"application_ids" binding:"required,min=1"`
	ParkingTypeID  uuid.UUID   `json:"parking_type_id" binding:"required"`
}

// AssignParkingType godoc
//
//	@Summary		Assign a parking type
//	@Description	Apply one parking type decision to the selected applications
//	@Tags			application
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.AssignReq	true	"Assignment payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/applications/assign [post]
func (h *ApplicationHandler) AssignParkingType(c *gin.Context) {
	req := AssignReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	msg, err := h.svc.Assign(c.Request.Context(), middleware.GetProjectID(c), req.ApplicationIDs, req.ParkingTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("parking type not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: msg})
}

type IDsReq struct {
	ApplicationIDs []uuid.UUID `json:"application_ids" binding:"required,min=1"`
}

// RejectApplications godoc
//
//	@Summary		Reject applications
//	@Tags			application
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.IDsReq	true	"Selection payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/applications/reject [post]
func (h *ApplicationHandler) RejectApplications(c *gin.Context) {
	req := IDsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Reject(c.Request.Context(), middleware.GetProjectID(c), req.ApplicationIDs); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "rejected"})
}

// DeleteApplications godoc
//
//	@Summary		Delete applications
//	@Tags			application
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.IDsReq	true	"Selection payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/applications/delete [post]
func (h *ApplicationHandler) DeleteApplications(c *gin.Context) {
	req := IDsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.GetProjectID(c), req.ApplicationIDs); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

type ExportReq struct {
	Format         string      `form:"format,default=csv" json:"format"`
	ApplicationIDs []uuid.UUID `form:"application_ids" json:"application_ids"`
}

// ExportApplications godoc
//
//	@Summary		Export applications
//	@Description	Download the selection (or everything) as CSV or XLSX
//	@Tags			application
//	@Produce		application/octet-stream
//	@Param			projectID		path	string	true	"Project ID"
//	@Param			format			query	string	false	"csv or xlsx, default csv"
//	@Param			application_ids	query	[]string	false	"Restrict to these applications"
//	@Security		BearerAuth
//	@Success		200	{file}	byte
//	@Router			/projects/{projectID}/applications/export [get]
func (h *ApplicationHandler) ExportApplications(c *gin.Context) {
	req := ExportReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID := middleware.GetProjectID(c)
	stamp := time.Now().Format("20060102-150405")

	switch req.Format {
	case "csv":
		data, err := h.svc.ExportCSV(c.Request.Context(), projectID, req.ApplicationIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applications-%s.csv"`, stamp))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		data, err := h.svc.ExportXLSX(c.Request.Context(), projectID, req.ApplicationIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applications-%s.xlsx"`, stamp))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, serializer.ParamErr("format must be csv or xlsx", nil))
	}
}
