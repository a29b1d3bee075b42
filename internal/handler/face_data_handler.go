package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type faceDataService interface {
	ListByPersonCode(ctx context.Context, personCode string) ([]models.FaceData, error)
	Create(ctx context.Context, req service.FaceDataRequest) (*models.FaceData, error)
	Update(ctx context.Context, id int64, req service.FaceDataRequest) (*models.FaceData, error)
	Delete(ctx context.Context, id int64) error
}

// FaceDataHandler exposes face registration endpoints.
type FaceDataHandler struct {
	faces faceDataService
}

// NewFaceDataHandler constructs FaceDataHandler.
func NewFaceDataHandler(faces faceDataService) *FaceDataHandler {
	return &FaceDataHandler{faces: faces}
}

// ListByPersonCode godoc
// @Summary List face data for a student or teacher code
// @Tags FaceData
// @Produce json
// @Param personCode path string true "StudentCode or TeacherCode"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /face-data/{personCode} [get]
func (h *FaceDataHandler) ListByPersonCode(c *gin.Context) {
	items, err := h.faces.ListByPersonCode(c.Request.Context(), strings.TrimSpace(c.Param("personCode")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Face data retrieved successfully", items)
}

// Create godoc
// @Summary Register face data
// @Tags FaceData
// @Accept json
// @Produce json
// @Param payload body service.FaceDataRequest true "Face data payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /face-data [post]
func (h *FaceDataHandler) Create(c *gin.Context) {
	var req service.FaceDataRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.faces.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Face data created successfully", item)
}

// Update godoc
// @Summary Replace face data
// @Tags FaceData
// @Accept json
// @Produce json
// @Param id path int true "Face data ID"
// @Param payload body service.FaceDataRequest true "Face data payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /face-data/{id} [put]
func (h *FaceDataHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.FaceDataRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.faces.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Face data updated successfully", item)
}

// Delete godoc
// @Summary Delete face data
// @Tags FaceData
// @Produce json
// @Param id path int true "Face data ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /face-data/{id} [delete]
func (h *FaceDataHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.faces.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Face data deleted successfully", nil)
}
