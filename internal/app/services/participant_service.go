package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/filestorage"
	"github.com/shecodes/community-api/internal/pkg/helpers"
)

// participantStore is the persistence surface the participant service
// depends on
type participantStore interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id int64) (*models.Participant, error)
	ExistsByEventAndMember(ctx context.Context, eventID, memberID int64) (bool, error)
	ListByEvent(ctx context.Context, eventID int64, status *string, page, pageSize int) ([]*models.Participant, int64, error)
	ListByMember(ctx context.Context, memberID int64, page, pageSize int) ([]*models.Participant, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.ParticipantStatus) error
	SetCertificate(ctx context.Context, id int64, certificateURL *string) error
	SetFeedback(ctx context.Context, id int64, feedback string) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// eventReader loads events referenced by registrations
type eventReader interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// ParticipantService defines the interface for registration operations
type ParticipantService interface {
	RegisterParticipant(ctx context.Context, req *dto.CreateParticipantRequest) (*models.Participant, error)
	GetParticipantByID(ctx context.Context, id int64) (*models.Participant, error)
	ListEventParticipants(ctx context.Context, eventID int64, status *string, page, pageSize int) (*dto.PaginatedResponse, error)
	ListMemberRegistrations(ctx context.Context, memberID int64, page, pageSize int) (*dto.PaginatedResponse, error)
	UpdateParticipantStatus(ctx context.Context, id int64, status string) error
	SubmitFeedback(ctx context.Context, id int64, feedback string) error
	UploadCertificate(ctx context.Context, participantID int64, data []byte, contentType string) (*dto.CertificateResponse, error)
	DeleteParticipants(ctx context.Context, ids []int64) (int64, error)
}

// participantServiceImpl implements ParticipantService
type participantServiceImpl struct {
	participantRepo participantStore
	eventRepo       eventReader
	userRepo        userReader
	fileStorage     filestorage.Storage
	logger          zerolog.Logger
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(
	participantRepo participantStore,
	eventRepo eventReader,
	userRepo userReader,
	fileStorage filestorage.Storage,
	logger zerolog.Logger,
) ParticipantService {
	return &participantServiceImpl{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// RegisterParticipant registers a member to an event. The event and member
// are loaded up front so error messages can name them; the unique constraint
// on (event_id, member_id) remains the authoritative duplicate guard under
// concurrency.
func (s *participantServiceImpl) RegisterParticipant(ctx context.Context, req *dto.CreateParticipantRequest) (*models.Participant, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEventNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrEventNotFound,
				fmt.Sprintf("Event with id %d not found.", req.EventID))
		}
		return nil, fmt.Errorf("error loading event: %w", err)
	}

	member, err := s.userRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound,
				fmt.Sprintf("User with id %d not found.", req.MemberID))
		}
		return nil, fmt.Errorf("error loading member: %w", err)
	}

	duplicateMsg := fmt.Sprintf("User %s is already registered for event '%s'.", member.Name, event.Title)

	alreadyRegistered, err := s.participantRepo.ExistsByEventAndMember(ctx, req.EventID, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("error checking registration: %w", err)
	}
	if alreadyRegistered {
		return nil, apperrors.NewCustomError(apperrors.ErrDuplicateRegistration, duplicateMsg)
	}

	registrationDate := time.Now()
	if req.RegistrationDate != nil {
		registrationDate = *req.RegistrationDate
	}

	status := models.ParticipantStatusRegistered
	if req.Status != nil && *req.Status != "" {
		status = models.ParticipantStatus(*req.Status)
	}

	participant := &models.Participant{
		EventID:          req.EventID,
		MemberID:         req.MemberID,
		RegistrationDate: registrationDate,
		Status:           status,
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		s.logger.Warn().Err(err).
			Int64("event_id", req.EventID).
			Int64("member_id", req.MemberID).
			Msg("Failed to register participant")
		// The pre-check can lose the race against a concurrent insert; the
		// unique constraint then fires and gets the same friendly message.
		if apperrors.Is(err, apperrors.ErrDuplicateRegistration) {
			return nil, apperrors.NewCustomError(apperrors.ErrDuplicateRegistration, duplicateMsg)
		}
		return nil, err
	}

	s.logger.Info().
		Int64("participant_id", participant.ID).
		Int64("event_id", req.EventID).
		Int64("member_id", req.MemberID).
		Msg("Participant registered")

	return s.participantRepo.GetByID(ctx, participant.ID)
}

// GetParticipantByID retrieves a registration with its event and member
func (s *participantServiceImpl) GetParticipantByID(ctx context.Context, id int64) (*models.Participant, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid participant id")
	}
	return s.participantRepo.GetByID(ctx, id)
}

// ListEventParticipants retrieves an event's registrations
func (s *participantServiceImpl) ListEventParticipants(ctx context.Context, eventID int64, status *string, page, pageSize int) (*dto.PaginatedResponse, error) {
	eventExists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error checking event: %w", err)
	}
	if !eventExists {
		return nil, apperrors.ErrEventNotFound
	}

	participants, total, err := s.participantRepo.ListByEvent(ctx, eventID, status, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}

	if participants == nil {
		participants = []*models.Participant{}
	}

	return &dto.PaginatedResponse{
		Items:      participants,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// ListMemberRegistrations retrieves a member's registrations with the events
// they belong to
func (s *participantServiceImpl) ListMemberRegistrations(ctx context.Context, memberID int64, page, pageSize int) (*dto.PaginatedResponse, error) {
	participants, total, err := s.participantRepo.ListByMember(ctx, memberID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}

	if participants == nil {
		participants = []*models.Participant{}
	}

	return &dto.PaginatedResponse{
		Items:      participants,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// UpdateParticipantStatus changes a registration's lifecycle status
func (s *participantServiceImpl) UpdateParticipantStatus(ctx context.Context, id int64, status string) error {
	if err := s.participantRepo.UpdateStatus(ctx, id, models.ParticipantStatus(status)); err != nil {
		return err
	}

	s.logger.Info().Int64("participant_id", id).Str("status", status).Msg("Participant status updated")
	return nil
}

// SubmitFeedback stores a participant's feedback text
func (s *participantServiceImpl) SubmitFeedback(ctx context.Context, id int64, feedback string) error {
	return s.participantRepo.SetFeedback(ctx, id, feedback)
}

// UploadCertificate stores a certificate blob and attaches its URL to the
// registration, replacing a previously stored certificate.
func (s *participantServiceImpl) UploadCertificate(ctx context.Context, participantID int64, data []byte, contentType string) (*dto.CertificateResponse, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	url, err := s.fileStorage.Upload(ctx, data, contentType)
	if err != nil {
		s.logger.Error().Err(err).Int64("participant_id", participantID).Msg("Failed to store certificate")
		return nil, apperrors.NewStorageError("could not store certificate")
	}

	if err := s.participantRepo.SetCertificate(ctx, participantID, &url); err != nil {
		// The blob is orphaned if this fails; remove it again
		if _, delErr := s.fileStorage.Delete(ctx, url); delErr != nil {
			s.logger.Warn().Err(delErr).Str("url", url).Msg("Failed to clean up orphaned certificate")
		}
		return nil, err
	}

	if participant.CertificateURL != nil && *participant.CertificateURL != url {
		if _, err := s.fileStorage.Delete(ctx, *participant.CertificateURL); err != nil {
			s.logger.Warn().Err(err).Str("url", *participant.CertificateURL).Msg("Failed to delete old certificate")
		}
	}

	s.logger.Info().Int64("participant_id", participantID).Str("url", url).Msg("Certificate uploaded")

	return &dto.CertificateResponse{
		ParticipantID:  participantID,
		CertificateURL: url,
	}, nil
}

// DeleteParticipants removes registrations in batch. An empty id set is a
// no-op reporting zero deletions; the controller rejects empty payloads.
func (s *participantServiceImpl) DeleteParticipants(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	deleted, err := s.participantRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("deleted", deleted).Int("requested", len(ids)).Msg("Participants deleted")
	return deleted, nil
}
