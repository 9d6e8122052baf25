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

type QrCodeHandler struct {
	svc service.QrCodeService
}

func NewQrCodeHandler(svc service.QrCodeService) *QrCodeHandler {
	return &QrCodeHandler{svc: svc}
}

// ListQrCodes godoc
//
//	@Summary		List QR codes
//	@Tags			qr-code
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.QrCode}
//	@Router			/projects/{projectID}/qr-codes [get]
func (h *QrCodeHandler) ListQrCodes(c *gin.Context) {
	codes, err := h.svc.List(c.Request.Context(), middleware.GetProjectID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: codes})
}

type QrCodeReq struct {
	Size    int    `json:"size"`
	FgColor string `json:"fg_color"`
	BgColor string `json:"bg_color"`
}

// CreateQrCode godoc
//
//	@Summary		Create a QR code
//	@Description	Create a code pointing at the project's visitor page
//	@Tags			qr-code
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			payload		body	handler.QrCodeReq	true	"QR code payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.QrCode}
//	@Router			/projects/{projectID}/qr-codes [post]
func (h *QrCodeHandler) CreateQrCode(c *gin.Context) {
	req := QrCodeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	q, err := h.svc.Create(c.Request.Context(), middleware.GetProjectID(c), service.QrCodeCreateInput{
		Size: req.Size, FgColor: req.FgColor, BgColor: req.BgColor,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: q})
}

// UpdateQrCode godoc
//
//	@Summary		Update a QR code
//	@Description	Change size or colors; the embedded address never changes
//	@Tags			qr-code
//	@Accept			json
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			qrID		path	string	true	"QR code ID"
//	@Param			payload		body	handler.QrCodeReq	true	"QR code payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.QrCode}
//	@Router			/projects/{projectID}/qr-codes/{qrID} [put]
func (h *QrCodeHandler) UpdateQrCode(c *gin.Context) {
	qrID, err := uuid.Parse(c.Param("qrID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid qr code id", err))
		return
	}

	req := QrCodeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	q, err := h.svc.Update(c.Request.Context(), middleware.GetProjectID(c), qrID, service.QrCodeCreateInput{
		Size: req.Size, FgColor: req.FgColor, BgColor: req.BgColor,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("qr code not found"))
			return
		}
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: q})
}

// DeleteQrCode godoc
//
//	@Summary		Delete a QR code
//	@Tags			qr-code
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			qrID		path	string	true	"QR code ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{projectID}/qr-codes/{qrID} [delete]
func (h *QrCodeHandler) DeleteQrCode(c *gin.Context) {
	qrID, err := uuid.Parse(c.Param("qrID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid qr code id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.GetProjectID(c), qrID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

// RenderQrCode godoc
//
//	@Summary		Render a QR code
//	@Description	Return the stored code as a PNG image
//	@Tags			qr-code
//	@Produce		png
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			qrID		path	string	true	"QR code ID"
//	@Security		BearerAuth
//	@Success		200	{file}	byte
//	@Router			/projects/{projectID}/qr-codes/{qrID}/image [get]
func (h *QrCodeHandler) RenderQrCode(c *gin.Context) {
	qrID, err := uuid.Parse(c.Param("qrID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid qr code id", err))
		return
	}

	png, err := h.svc.Render(c.Request.Context(), middleware.GetProjectID(c), qrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("qr code not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "render failed", err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ShareQrCode godoc
//
//	@Summary		Get a shareable download link
//	@Description	Upload the rendered image to object storage and return a pre-signed URL
//	@Tags			qr-code
//	@Produce		json
//	@Param			projectID	path	string	true	"Project ID"
//	@Param			qrID		path	string	true	"QR code ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=string}
//	@Router			/projects/{projectID}/qr-codes/{qrID}/share [post]
func (h *QrCodeHandler) ShareQrCode(c *gin.Context) {
	qrID, err := uuid.Parse(c.Param("qrID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid qr code id", err))
		return
	}

	url, err := h.svc.ShareLink(c.Request.Context(), middleware.GetProjectID(c), qrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("qr code not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "share failed", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: url})
}
