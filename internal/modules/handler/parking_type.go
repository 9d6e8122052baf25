package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/modules/service"
)

type ParkingTypeHandler struct {
	svc service.ParkingTypeService
}

func NewParkingTypeHandler(svc service.ParkingTypeService) *ParkingTypeHandler {
	return &ParkingTypeHandler{svc: svc}
}

// ListParkingTypes godoc
//
//	@Summary		List parking types
//	@Description	List a project's parking types in display order
//	@Tags			parking-type
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ParkingType}
//	@Router			/projects/{projectID}/parking-types [get]
func (h *ParkingTypeHandler) ListParkingTypes(c *gin.Context) {
	types, err := h.svc.List(c.Request.Context(), middleware.GetProjectID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: types})
}

type CreateParkingTypeReq struct {
	Name  string `json:"name" binding:"required"`
	Hours int    `json:"hours" binding:"min=0"`
}

// CreateParkingType godoc
//
//	@Summary		Create a parking type
//	@Description	Append a parking type at the end of the display order
//	@Tags			parking-type
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.CreateParkingTypeReq	true	"Parking type payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.ParkingType}
//	@Router			/projects/{projectID}/parking-types [post]
func (h *ParkingTypeHandler) CreateParkingType(c *gin.Context) {
	req := CreateParkingTypeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	t, err := h.svc.Create(c.Request.Context(), middleware.GetProjectID(c), req.Name, req.Hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: t})
}

// DeleteParkingType godoc
//
//	@Summary		Delete a parking type
//	@Description	Remove a parking type; applications keep their status but lose the reference
//	@Tags			parking-type
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			typeID		path	string	true	"Parking type ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/parking-types/{typeID} [delete]
func (h *ParkingTypeHandler) DeleteParkingType(c *gin.Context) {
	typeID, err := uuid.Parse(c.Param("typeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid parking type id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.GetProjectID(c), typeID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

type ReorderReq struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required,min=1"`
}

// ReorderParkingTypes godoc
//
//	@Summary		Reorder parking types
//	@Description	Apply a complete new display order
//	@Tags			parking-type
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.ReorderReq	true	"Full ordered id list"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/parking-types/order [put]
func (h *ParkingTypeHandler) ReorderParkingTypes(c *gin.Context) {
	req := ReorderReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Reorder(c.Request.Context(), middleware.GetProjectID(c), req.OrderedIDs); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "reordered"})
}
