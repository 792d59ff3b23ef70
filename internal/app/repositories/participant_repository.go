package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/dberrors"
	"github.com/shecodes/community-api/internal/pkg/helpers"
)

// UniqueRegistrationConstraint is the database constraint that closes the
// race between two concurrent registrations of the same member.
const UniqueRegistrationConstraint = "uq_participants_event_member"

// ParticipantRepository handles database operations for event registrations
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Create inserts a registration. A unique violation on the event/member
// pair is reported as a duplicate registration regardless of which caller
// lost the race.
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants (event_id, member_id, registration_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		participant.EventID, participant.MemberID,
		participant.RegistrationDate, participant.Status,
	).Scan(&participant.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, UniqueRegistrationConstraint) {
			return apperrors.ErrDuplicateRegistration
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("event or member does not exist")
		}
		return fmt.Errorf("error inserting participant: %w", err)
	}

	return nil
}

// GetByID retrieves a registration with its event and member attached
func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*models.Participant, error) {
	query := `
		SELECT p.id, p.event_id, p.member_id, p.registration_date, p.status,
			p.certificate_url, p.feedback,
			e.id, e.title, e.event_type, e.status, e.location, e.start_date, e.end_date,
			u.id, u.email, u.name, u.role, u.avatar
		FROM participants p
		JOIN events e ON e.id = p.event_id
		JOIN users u ON u.id = p.member_id
		WHERE p.id = $1
	`

	participant, err := scanParticipantWithRelations(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error retrieving participant: %w", err)
	}

	return participant, nil
}

// ExistsByEventAndMember checks whether a member is already registered.
// The unique constraint remains the authoritative guard; this exists only
// to give a friendly answer without attempting an insert.
func (r *ParticipantRepository) ExistsByEventAndMember(ctx context.Context, eventID, memberID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM participants WHERE event_id = $1 AND member_id = $2)`,
		eventID, memberID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking registration existence: %w", err)
	}
	return exists, nil
}

// ListByEvent retrieves an event's registrations with member details
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID int64, status *string, page, pageSize int) ([]*models.Participant, int64, error) {
	query := `
		SELECT p.id, p.event_id, p.member_id, p.registration_date, p.status,
			p.certificate_url, p.feedback,
			u.id, u.email, u.name, u.role, u.avatar,
			COUNT(*) OVER() AS total_count
		FROM participants p
		JOIN users u ON u.id = p.member_id
		WHERE p.event_id = $1
	`

	args := []interface{}{eventID}
	argIndex := 2

	if status != nil && *status != "" {
		query += fmt.Sprintf(" AND p.status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query += " ORDER BY p.registration_date, p.id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	var total int64
	for rows.Next() {
		var p models.Participant
		var member models.User
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.MemberID, &p.RegistrationDate, &p.Status,
			&p.CertificateURL, &p.Feedback,
			&member.ID, &member.Email, &member.Name, &member.Role, &member.Avatar,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning participant row: %w", err)
		}
		p.Member = &member
		participants = append(participants, &p)
	}

	return participants, total, rows.Err()
}

// ListByMember retrieves a member's registrations with event details
func (r *ParticipantRepository) ListByMember(ctx context.Context, memberID int64, page, pageSize int) ([]*models.Participant, int64, error) {
	query := `
		SELECT p.id, p.event_id, p.member_id, p.registration_date, p.status,
			p.certificate_url, p.feedback,
			e.id, e.title, e.event_type, e.status, e.location, e.start_date, e.end_date,
			COUNT(*) OVER() AS total_count
		FROM participants p
		JOIN events e ON e.id = p.event_id
		WHERE p.member_id = $1
		ORDER BY e.start_date DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	rows, err := r.db.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	var total int64
	for rows.Next() {
		var p models.Participant
		var event models.Event
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.MemberID, &p.RegistrationDate, &p.Status,
			&p.CertificateURL, &p.Feedback,
			&event.ID, &event.Title, &event.EventType, &event.Status,
			&event.Location, &event.StartDate, &event.EndDate,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning participant row: %w", err)
		}
		p.Event = &event
		participants = append(participants, &p)
	}

	return participants, total, rows.Err()
}

// UpdateStatus changes a registration's lifecycle status
func (r *ParticipantRepository) UpdateStatus(ctx context.Context, id int64, status models.ParticipantStatus) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE participants SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating participant status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

// SetCertificate stores the public URL of a participant's certificate
func (r *ParticipantRepository) SetCertificate(ctx context.Context, id int64, certificateURL *string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE participants SET certificate_url = $1 WHERE id = $2`, certificateURL, id)
	if err != nil {
		return fmt.Errorf("error setting certificate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

// SetFeedback stores a participant's feedback text
func (r *ParticipantRepository) SetFeedback(ctx context.Context, id int64, feedback string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE participants SET feedback = $1 WHERE id = $2`, feedback, id)
	if err != nil {
		return fmt.Errorf("error setting feedback: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

// DeleteByIDs removes registrations in batch and reports how many went away
func (r *ParticipantRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := squirrel.Delete("participants").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting participants: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// scanParticipantWithRelations scans the joined participant/event/member row
func scanParticipantWithRelations(row pgx.Row) (*models.Participant, error) {
	var p models.Participant
	var event models.Event
	var member models.User

	err := row.Scan(
		&p.ID, &p.EventID, &p.MemberID, &p.RegistrationDate, &p.Status,
		&p.CertificateURL, &p.Feedback,
		&event.ID, &event.Title, &event.EventType, &event.Status,
		&event.Location, &event.StartDate, &event.EndDate,
		&member.ID, &member.Email, &member.Name, &member.Role, &member.Avatar,
	)
	if err != nil {
		return nil, err
	}

	p.Event = &event
	p.Member = &member
	return &p, nil
}
