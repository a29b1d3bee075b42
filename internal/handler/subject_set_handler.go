package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type subjectSetService interface {
	List(ctx context.Context) ([]models.SubjectSet, error)
	Get(ctx context.Context, id int64) (*models.SubjectSet, error)
	Create(ctx context.Context, req service.SubjectSetRequest) (*models.SubjectSet, error)
}

// SubjectSetHandler exposes subject set endpoints.
type SubjectSetHandler struct {
	subjectSets subjectSetService
}

// NewSubjectSetHandler constructs SubjectSetHandler.
func NewSubjectSetHandler(subjectSets subjectSetService) *SubjectSetHandler {
	return &SubjectSetHandler{subjectSets: subjectSets}
}

// List godoc
// @Summary List subject sets
// @Tags SubjectSets
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subject-sets [get]
func (h *SubjectSetHandler) List(c *gin.Context) {
	sets, err := h.subjectSets.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subject sets retrieved successfully", sets)
}

// Get godoc
// @Summary Get subject set
// @Tags SubjectSets
// @Produce json
// @Param id path int true "Subject set row ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subject-sets/{id} [get]
func (h *SubjectSetHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	set, err := h.subjectSets.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subject set retrieved successfully", set)
}

// Create godoc
// @Summary Create subject set
// @Tags SubjectSets
// @Accept json
// @Produce json
// @Param payload body service.SubjectSetRequest true "Subject set payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subject-sets [post]
func (h *SubjectSetHandler) Create(c *gin.Context) {
	var req service.SubjectSetRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	set, err := h.subjectSets.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Subject set created successfully", set)
}
