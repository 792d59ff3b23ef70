package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/app/services"
	"github.com/shecodes/community-api/internal/middleware"
	"github.com/shecodes/community-api/internal/pkg/helpers"
)

// MentorController handles mentor directory operations
type MentorController struct {
	mentorService services.MentorService
}

// NewMentorController creates a new MentorController
func NewMentorController(mentorService services.MentorService) *MentorController {
	return &MentorController{
		mentorService: mentorService,
	}
}

// CreateMentor adds a mentor to the directory
// @Summary Create a new mentor
// @Description Adds a mentor to the directory
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorRequest true "Mentor information"
// @Success 201 {object} dto.APIResponse{data=models.Mentor} "Mentor created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors [post]
func (c *MentorController) CreateMentor(ctx *gin.Context) {
	var req dto.CreateMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mentor data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	mentor, err := c.mentorService.CreateMentor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      mentor,
		Timestamp: time.Now(),
	})
}

// GetMentorByID retrieves a mentor by ID
// @Summary Get mentor by ID
// @Description Retrieves a specific mentor by its ID
// @Tags mentors
// @Accept json
// @Produce json
// @Param id path int true "Mentor ID"
// @Success 200 {object} dto.APIResponse{data=models.Mentor} "Mentor retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid mentor ID"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors/{id} [get]
func (c *MentorController) GetMentorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Mentor ID")
	if !ok {
		return
	}

	mentor, err := c.mentorService.GetMentorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      mentor,
		Timestamp: time.Now(),
	})
}

// ListMentors retrieves mentors with filtering and pagination
// @Summary List mentors
// @Description Retrieves mentors filtered by status and a free-text search on name and occupation
// @Tags mentors
// @Accept json
// @Produce json
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Param search query string false "Search in name and occupation"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Mentors retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors [get]
func (c *MentorController) ListMentors(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	status := queryPtr(ctx, "status")
	search := queryPtr(ctx, "search")

	mentors, err := c.mentorService.ListMentors(ctx, status, search, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      mentors,
		Timestamp: time.Now(),
	})
}

// UpdateMentor applies a partial update to a mentor
// @Summary Update a mentor
// @Description Updates the provided fields of a mentor
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Param request body dto.UpdateMentorRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Mentor} "Mentor updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors/{id} [patch]
func (c *MentorController) UpdateMentor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Mentor ID")
	if !ok {
		return
	}

	var req dto.UpdateMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid mentor data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	mentor, err := c.mentorService.UpdateMentor(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      mentor,
		Timestamp: time.Now(),
	})
}

// DeleteMentor removes a mentor from the directory
// @Summary Delete a mentor
// @Description Removes a mentor. Events keep existing; only their links to the mentor are removed.
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mentor ID"
// @Success 204 "Mentor deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid mentor ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors/{id} [delete]
func (c *MentorController) DeleteMentor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Mentor ID")
	if !ok {
		return
	}

	if err := c.mentorService.DeleteMentor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
