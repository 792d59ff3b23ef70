package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/helpers"
)

const mentorColumns = `id, name, occupation, description, image_src, story, instagram, linkedin, status`

// MentorRepository handles database operations for the mentor directory
type MentorRepository struct {
	db *pgxpool.Pool
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{db: db}
}

// Create inserts a new mentor
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	query := `
		INSERT INTO mentors (name, occupation, description, image_src, story, instagram, linkedin, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		mentor.Name, mentor.Occupation, mentor.Description, mentor.ImageSrc,
		mentor.Story, mentor.Instagram, mentor.LinkedIn, mentor.Status,
	).Scan(&mentor.ID)
	if err != nil {
		return fmt.Errorf("error inserting mentor: %w", err)
	}

	return nil
}

// GetByID retrieves a mentor by ID
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE id = $1`

	var mentor models.Mentor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&mentor.ID, &mentor.Name, &mentor.Occupation, &mentor.Description,
		&mentor.ImageSrc, &mentor.Story, &mentor.Instagram, &mentor.LinkedIn, &mentor.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor: %w", err)
	}

	return &mentor, nil
}

// GetAll retrieves mentors with filtering and pagination
func (r *MentorRepository) GetAll(ctx context.Context, status, search *string, page, pageSize int) ([]*models.Mentor, int64, error) {
	query := `SELECT ` + mentorColumns + `, COUNT(*) OVER() AS total_count FROM mentors WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if status != nil && *status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	if search != nil && *search != "" {
		searchPattern := "%" + *search + "%"
		query += fmt.Sprintf(" AND (name ILIKE $%d OR occupation ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, searchPattern, searchPattern)
		argIndex += 2
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query += " ORDER BY name, id"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var mentors []*models.Mentor
	var total int64
	for rows.Next() {
		var mentor models.Mentor
		if err := rows.Scan(
			&mentor.ID, &mentor.Name, &mentor.Occupation, &mentor.Description,
			&mentor.ImageSrc, &mentor.Story, &mentor.Instagram, &mentor.LinkedIn, &mentor.Status,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning mentor row: %w", err)
		}
		mentors = append(mentors, &mentor)
	}

	return mentors, total, rows.Err()
}

// GetByIDs retrieves the mentors matching the given ids. Ids that resolve
// to nothing are simply absent from the result.
func (r *MentorRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Mentor, error) {
	if len(ids) == 0 {
		return []*models.Mentor{}, nil
	}

	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var mentors []*models.Mentor
	for rows.Next() {
		var mentor models.Mentor
		if err := rows.Scan(
			&mentor.ID, &mentor.Name, &mentor.Occupation, &mentor.Description,
			&mentor.ImageSrc, &mentor.Story, &mentor.Instagram, &mentor.LinkedIn, &mentor.Status,
		); err != nil {
			return nil, fmt.Errorf("error scanning mentor row: %w", err)
		}
		mentors = append(mentors, &mentor)
	}

	return mentors, rows.Err()
}

// Update updates an existing mentor
func (r *MentorRepository) Update(ctx context.Context, mentor *models.Mentor) error {
	query := `
		UPDATE mentors
		SET name = $1, occupation = $2, description = $3, image_src = $4,
			story = $5, instagram = $6, linkedin = $7, status = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		mentor.Name, mentor.Occupation, mentor.Description, mentor.ImageSrc,
		mentor.Story, mentor.Instagram, mentor.LinkedIn, mentor.Status, mentor.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating mentor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}

	return nil
}

// Delete removes a mentor. Event links to the mentor go with it.
func (r *MentorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM mentors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting mentor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}
	return nil
}
