package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/helpers"
)

// mentorStore is the persistence surface the mentor service depends on
type mentorStore interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	GetByID(ctx context.Context, id int64) (*models.Mentor, error)
	GetAll(ctx context.Context, status, search *string, page, pageSize int) ([]*models.Mentor, int64, error)
	Update(ctx context.Context, mentor *models.Mentor) error
	Delete(ctx context.Context, id int64) error
}

// MentorService defines the interface for mentor directory operations
type MentorService interface {
	CreateMentor(ctx context.Context, req *dto.CreateMentorRequest) (*models.Mentor, error)
	GetMentorByID(ctx context.Context, id int64) (*models.Mentor, error)
	ListMentors(ctx context.Context, status, search *string, page, pageSize int) (*dto.PaginatedResponse, error)
	UpdateMentor(ctx context.Context, id int64, req *dto.UpdateMentorRequest) (*models.Mentor, error)
	DeleteMentor(ctx context.Context, id int64) error
}

// mentorServiceImpl implements MentorService
type mentorServiceImpl struct {
	mentorRepo mentorStore
	logger     zerolog.Logger
}

// NewMentorService creates a new MentorService
func NewMentorService(mentorRepo mentorStore, logger zerolog.Logger) MentorService {
	return &mentorServiceImpl{
		mentorRepo: mentorRepo,
		logger:     logger,
	}
}

// CreateMentor adds a mentor to the directory
func (s *mentorServiceImpl) CreateMentor(ctx context.Context, req *dto.CreateMentorRequest) (*models.Mentor, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}

	mentor := &models.Mentor{
		Name:        req.Name,
		Occupation:  req.Occupation,
		Description: req.Description,
		ImageSrc:    req.ImageSrc,
		Story:       req.Story,
		Instagram:   req.Instagram,
		LinkedIn:    req.LinkedIn,
		Status:      status,
	}

	if err := s.mentorRepo.Create(ctx, mentor); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create mentor")
		return nil, fmt.Errorf("error creating mentor: %w", err)
	}

	s.logger.Info().Int64("mentor_id", mentor.ID).Str("name", mentor.Name).Msg("Mentor created")
	return mentor, nil
}

// GetMentorByID retrieves a mentor by ID
func (s *mentorServiceImpl) GetMentorByID(ctx context.Context, id int64) (*models.Mentor, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid mentor id")
	}
	return s.mentorRepo.GetByID(ctx, id)
}

// ListMentors retrieves mentors with filtering and pagination
func (s *mentorServiceImpl) ListMentors(ctx context.Context, status, search *string, page, pageSize int) (*dto.PaginatedResponse, error) {
	mentors, total, err := s.mentorRepo.GetAll(ctx, status, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing mentors: %w", err)
	}

	if mentors == nil {
		mentors = []*models.Mentor{}
	}

	return &dto.PaginatedResponse{
		Items:      mentors,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// UpdateMentor applies a partial update to a mentor
func (s *mentorServiceImpl) UpdateMentor(ctx context.Context, id int64, req *dto.UpdateMentorRequest) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mentor.Name = *req.Name
	}
	if req.Occupation != nil {
		mentor.Occupation = *req.Occupation
	}
	if req.Description != nil {
		mentor.Description = *req.Description
	}
	if req.ImageSrc != nil {
		mentor.ImageSrc = *req.ImageSrc
	}
	if req.Story != nil {
		mentor.Story = *req.Story
	}
	if req.Instagram != nil {
		mentor.Instagram = req.Instagram
	}
	if req.LinkedIn != nil {
		mentor.LinkedIn = req.LinkedIn
	}
	if req.Status != nil {
		mentor.Status = *req.Status
	}

	if err := s.mentorRepo.Update(ctx, mentor); err != nil {
		s.logger.Error().Err(err).Int64("mentor_id", id).Msg("Failed to update mentor")
		return nil, err
	}

	return mentor, nil
}

// DeleteMentor removes a mentor from the directory. Links from events to the
// mentor are removed with it; the events themselves stay.
func (s *mentorServiceImpl) DeleteMentor(ctx context.Context, id int64) error {
	if err := s.mentorRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("mentor_id", id).Msg("Mentor deleted")
	return nil
}
