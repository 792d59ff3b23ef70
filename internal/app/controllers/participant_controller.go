package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/app/services"
	"github.com/shecodes/community-api/internal/middleware"
	"github.com/shecodes/community-api/internal/pkg/helpers"
)

// maxCertificateSize caps certificate uploads at 5 MB
const maxCertificateSize = 5 << 20

// ParticipantController handles event registration operations
type ParticipantController struct {
	participantService services.ParticipantService
}

// NewParticipantController creates a new ParticipantController
func NewParticipantController(participantService services.ParticipantService) *ParticipantController {
	return &ParticipantController{
		participantService: participantService,
	}
}

// RegisterParticipant registers a member to an event
// @Summary Register a participant
// @Description Registers a member to an event. A member can hold at most one registration per event.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateParticipantRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=models.Participant} "Participant registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event or member not found"
// @Failure 409 {object} dto.ErrorResponse "Member is already registered for this event"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants [post]
func (c *ParticipantController) RegisterParticipant(ctx *gin.Context) {
	var req dto.CreateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participant, err := c.participantService.RegisterParticipant(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      participant,
		Timestamp: time.Now(),
	})
}

// GetParticipantByID retrieves a registration by ID
// @Summary Get participant by ID
// @Description Retrieves a registration with its event and member details
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Success 200 {object} dto.APIResponse{data=models.Participant} "Participant retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid participant ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/{id} [get]
func (c *ParticipantController) GetParticipantByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Participant ID")
	if !ok {
		return
	}

	participant, err := c.participantService.GetParticipantByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      participant,
		Timestamp: time.Now(),
	})
}

// ListEventParticipants lists an event's registrations
// @Summary List event participants
// @Description Retrieves the registrations of an event, optionally filtered by status
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param status query string false "Filter by status" Enums(registered, attended, cancelled)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Participants retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants [get]
func (c *ParticipantController) ListEventParticipants(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id", "Event ID")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	status := queryPtr(ctx, "status")

	participants, err := c.participantService.ListEventParticipants(ctx, eventID, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      participants,
		Timestamp: time.Now(),
	})
}

// ListMyRegistrations lists the authenticated member's registrations
// @Summary List my registrations
// @Description Retrieves the authenticated member's registrations with the events they belong to
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Registrations retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/me [get]
func (c *ParticipantController) ListMyRegistrations(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	registrations, err := c.participantService.ListMemberRegistrations(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      registrations,
		Timestamp: time.Now(),
	})
}

// UpdateParticipantStatus changes a registration's status
// @Summary Update participant status
// @Description Changes a registration's status (registered, attended, cancelled)
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Param request body dto.UpdateParticipantStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/{id}/status [put]
func (c *ParticipantController) UpdateParticipantStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Participant ID")
	if !ok {
		return
	}

	var req dto.UpdateParticipantStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.participantService.UpdateParticipantStatus(ctx, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Participant status updated"},
		Timestamp: time.Now(),
	})
}

// SubmitFeedback stores a participant's feedback
// @Summary Submit participant feedback
// @Description Stores the feedback text of a registration
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Param request body dto.SubmitFeedbackRequest true "Feedback text"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Feedback stored successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/{id}/feedback [put]
func (c *ParticipantController) SubmitFeedback(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Participant ID")
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.participantService.SubmitFeedback(ctx, id, req.Feedback); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Feedback stored"},
		Timestamp: time.Now(),
	})
}

// UploadCertificate attaches a certificate file to a registration
// @Summary Upload participant certificate
// @Description Stores a certificate file for a registration and records its public URL
// @Tags participants
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Param certificate formData file true "Certificate file"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/{id}/certificate [post]
func (c *ParticipantController) UploadCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Participant ID")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("certificate")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Certificate file is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if fileHeader.Size > maxCertificateSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Certificate file too large")
		errorDetail = errorDetail.WithDetails("Maximum certificate size is 5 MB")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not read certificate file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Could not read certificate file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	certificate, err := c.participantService.UploadCertificate(ctx, id, data, contentType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      certificate,
		Timestamp: time.Now(),
	})
}

// DeleteParticipants removes registrations in batch
// @Summary Delete participants
// @Description Removes the given registrations and reports how many rows were deleted
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteParticipantsRequest true "Participant ids to delete"
// @Success 200 {object} dto.APIResponse{data=dto.BatchDeleteResponse} "Participants deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants [delete]
func (c *ParticipantController) DeleteParticipants(ctx *gin.Context) {
	var req dto.DeleteParticipantsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid delete request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	deleted, err := c.participantService.DeleteParticipants(ctx, req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.BatchDeleteResponse{Deleted: deleted},
		Timestamp: time.Now(),
	})
}
