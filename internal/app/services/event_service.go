package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/app/repositories"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/helpers"
	"github.com/shecodes/community-api/internal/pkg/validation"
)

// eventStore is the persistence surface the event service depends on
type eventStore interface {
	Create(ctx context.Context, event *models.Event, mentorIDs []int64) error
	Update(ctx context.Context, event *models.Event, children repositories.EventChildSet) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context, eventType, status, search *string, page, pageSize int) ([]*models.Event, int64, error)
	Delete(ctx context.Context, id int64) error
}

// EventService defines the interface for event aggregate operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*models.Event, error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, eventType, status, search *string, page, pageSize int) (*dto.EventListResponse, error)
	UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo eventStore
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo eventStore, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// CreateEvent creates an event together with its children and mentor links
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*models.Event, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationError("end date must not be before start date")
	}
	for _, session := range req.Sessions {
		if session.End.Before(session.Start) {
			return nil, apperrors.NewValidationError("session end must not be before session start")
		}
	}

	status := models.EventStatusUpcoming
	if req.Status != "" {
		status = models.EventStatus(req.Status)
	}

	event := &models.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       models.EventType(req.EventType),
		Status:          status,
		Location:        req.Location,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ImageSrc:        req.ImageSrc,
		ImageAlt:        req.ImageAlt,
		Tags:            emptyIfNil(req.Tags),
		Tools:           emptyIfNil(req.Tools),
		KeyPoints:       emptyIfNil(req.KeyPoints),
		LongDescription: req.LongDescription,
		RegisterLink:    req.RegisterLink,
		GroupLink:       req.GroupLink,
		Skills:          skillModels(req.Skills),
		Benefits:        benefitModels(req.Benefits),
		Sessions:        sessionModels(req.Sessions),
	}

	if err := s.eventRepo.Create(ctx, event, req.Mentors); err != nil {
		s.logger.Error().Err(err).Str("title", req.Title).Msg("Failed to create event")
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	s.logger.Info().Int64("event_id", event.ID).Str("title", event.Title).Msg("Event created")

	return s.eventRepo.GetByID(ctx, event.ID)
}

// GetEventByID retrieves an event with its full aggregate
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid event id")
	}
	return s.eventRepo.GetByID(ctx, id)
}

// ListEvents retrieves events with filtering and pagination
func (s *eventServiceImpl) ListEvents(ctx context.Context, eventType, status, search *string, page, pageSize int) (*dto.EventListResponse, error) {
	if eventType != nil && *eventType != "" && !validation.IsValidEventType(*eventType) {
		return nil, apperrors.NewValidationError("unknown event type filter")
	}
	if status != nil && *status != "" && !validation.IsValidEventStatus(*status) {
		return nil, apperrors.NewValidationError("unknown event status filter")
	}

	events, total, err := s.eventRepo.GetAll(ctx, eventType, status, search, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	if events == nil {
		events = []*models.Event{}
	}

	return &dto.EventListResponse{
		Events:     events,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// UpdateEvent applies a partial update to an event. Scalar fields left nil
// in the request stay as they are; a provided child collection is
// reconciled against the stored one.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyEventPatch(event, req)

	if event.EndDate.Before(event.StartDate) {
		return nil, apperrors.NewValidationError("end date must not be before start date")
	}
	if req.Sessions != nil {
		for _, session := range *req.Sessions {
			if session.End.Before(session.Start) {
				return nil, apperrors.NewValidationError("session end must not be before session start")
			}
		}
	}

	children := repositories.EventChildSet{Mentors: req.Mentors}
	if req.Skills != nil {
		skills := skillValues(*req.Skills)
		children.Skills = &skills
	}
	if req.Benefits != nil {
		benefits := benefitValues(*req.Benefits)
		children.Benefits = &benefits
	}
	if req.Sessions != nil {
		sessions := sessionValues(*req.Sessions)
		children.Sessions = &sessions
	}

	if err := s.eventRepo.Update(ctx, event, children); err != nil {
		s.logger.Error().Err(err).Int64("event_id", id).Msg("Failed to update event")
		return nil, err
	}

	s.logger.Info().Int64("event_id", id).Msg("Event updated")

	return s.eventRepo.GetByID(ctx, id)
}

// DeleteEvent removes an event unless participants are registered to it
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid event id")
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("event_id", id).Msg("Event deleted")
	return nil
}

// applyEventPatch copies the provided scalar fields of the request onto the
// stored event
func applyEventPatch(event *models.Event, req *dto.UpdateEventRequest) {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventType != nil {
		event.EventType = models.EventType(*req.EventType)
	}
	if req.Status != nil {
		event.Status = models.EventStatus(*req.Status)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.ImageSrc != nil {
		event.ImageSrc = req.ImageSrc
	}
	if req.ImageAlt != nil {
		event.ImageAlt = req.ImageAlt
	}
	if req.Tags != nil {
		event.Tags = *req.Tags
	}
	if req.Tools != nil {
		event.Tools = *req.Tools
	}
	if req.KeyPoints != nil {
		event.KeyPoints = *req.KeyPoints
	}
	if req.LongDescription != nil {
		event.LongDescription = req.LongDescription
	}
	if req.RegisterLink != nil {
		event.RegisterLink = req.RegisterLink
	}
	if req.GroupLink != nil {
		event.GroupLink = req.GroupLink
	}
}

func skillModels(inputs []dto.SkillInput) []*models.Skill {
	skills := make([]*models.Skill, 0, len(inputs))
	for _, in := range inputs {
		skills = append(skills, &models.Skill{Title: in.Title, Description: in.Description})
	}
	return skills
}

func benefitModels(inputs []dto.BenefitInput) []*models.Benefit {
	benefits := make([]*models.Benefit, 0, len(inputs))
	for _, in := range inputs {
		benefits = append(benefits, &models.Benefit{Title: in.Title, Text: in.Text})
	}
	return benefits
}

func sessionModels(inputs []dto.SessionInput) []*models.Session {
	sessions := make([]*models.Session, 0, len(inputs))
	for _, in := range inputs {
		sessions = append(sessions, &models.Session{
			Topic: in.Topic, Description: in.Description, Start: in.Start, End: in.End,
		})
	}
	return sessions
}

// skillValues maps reconcile inputs to rows; an input without an id becomes
// a row with id 0, the marker for "create"
func skillValues(inputs []dto.SkillInput) []models.Skill {
	skills := make([]models.Skill, 0, len(inputs))
	for _, in := range inputs {
		skill := models.Skill{Title: in.Title, Description: in.Description}
		if in.ID != nil {
			skill.ID = *in.ID
		}
		skills = append(skills, skill)
	}
	return skills
}

func benefitValues(inputs []dto.BenefitInput) []models.Benefit {
	benefits := make([]models.Benefit, 0, len(inputs))
	for _, in := range inputs {
		benefit := models.Benefit{Title: in.Title, Text: in.Text}
		if in.ID != nil {
			benefit.ID = *in.ID
		}
		benefits = append(benefits, benefit)
	}
	return benefits
}

func sessionValues(inputs []dto.SessionInput) []models.Session {
	sessions := make([]models.Session, 0, len(inputs))
	for _, in := range inputs {
		session := models.Session{
			Topic: in.Topic, Description: in.Description, Start: in.Start, End: in.End,
		}
		if in.ID != nil {
			session.ID = *in.ID
		}
		sessions = append(sessions, session)
	}
	return sessions
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
