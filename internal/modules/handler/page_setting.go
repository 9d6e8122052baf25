package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	"github.com/parkreg-io/parkreg/internal/modules/service"
)

type PageSettingHandler struct {
	svc service.PageSettingService
}

func NewPageSettingHandler(svc service.PageSettingService) *PageSettingHandler {
	return &PageSettingHandler{svc: svc}
}

// GetPageSettings godoc
//
//	@Summary		Get page settings
//	@Description	Return the project's page settings with defaults filled in
//	@Tags			page-setting
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=map[string]string}
//	@Router			/projects/{projectID}/settings [get]
func (h *PageSettingHandler) GetPageSettings(c *gin.Context) {
	settings, err := h.svc.Load(c.Request.Context(), middleware.GetProjectID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: settings})
}

type SavePageSettingsReq struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// SavePageSettings godoc
//
//	@Summary		Save page settings
//	@Description	Upsert the submitted setting keys
//	@Tags			page-setting
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.SavePageSettingsReq	true	"Settings payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/settings [put]
func (h *PageSettingHandler) SavePageSettings(c *gin.Context) {
	req := SavePageSettingsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Save(c.Request.Context(), middleware.GetProjectID(c), req.Settings); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "saved"})
}
