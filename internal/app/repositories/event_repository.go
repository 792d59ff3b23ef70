package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/db"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/helpers"
	"github.com/shecodes/community-api/internal/pkg/logger"
)

const eventColumns = `id, title, description, event_type, status, location, start_date, end_date,
		image_src, image_alt, tags, tools, key_points, long_description, register_link, group_link, created_at`

// EventChildSet carries the optional child collections of an event update.
// A nil collection means "leave as is"; an empty one means "remove all".
type EventChildSet struct {
	Skills   *[]models.Skill
	Benefits *[]models.Benefit
	Sessions *[]models.Session
	Mentors  *[]int64
}

// EventRepository handles database operations for the event aggregate
type EventRepository struct {
	pg *db.PostgresDB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(pg *db.PostgresDB) *EventRepository {
	return &EventRepository{pg: pg}
}

// Create inserts an event together with its children and mentor links.
// Mentor ids that resolve to no mentor row are dropped silently.
func (r *EventRepository) Create(ctx context.Context, event *models.Event, mentorIDs []int64) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO events (title, description, event_type, status, location, start_date, end_date,
				image_src, image_alt, tags, tools, key_points, long_description, register_link, group_link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query,
			event.Title, event.Description, event.EventType, event.Status, event.Location,
			event.StartDate, event.EndDate, event.ImageSrc, event.ImageAlt,
			event.Tags, event.Tools, event.KeyPoints,
			event.LongDescription, event.RegisterLink, event.GroupLink,
		).Scan(&event.ID, &event.CreatedAt)
		if err != nil {
			return fmt.Errorf("error inserting event: %w", err)
		}

		for _, skill := range event.Skills {
			if err := insertSkill(ctx, tx, event.ID, skill); err != nil {
				return err
			}
		}
		for _, benefit := range event.Benefits {
			if err := insertBenefit(ctx, tx, event.ID, benefit); err != nil {
				return err
			}
		}
		for _, session := range event.Sessions {
			if err := insertSession(ctx, tx, event.ID, session); err != nil {
				return err
			}
		}

		return replaceMentorLinks(ctx, tx, event.ID, mentorIDs)
	})
}

// Update writes the event row and reconciles the provided child collections.
// Collections left nil in children are not touched.
func (r *EventRepository) Update(ctx context.Context, event *models.Event, children EventChildSet) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE events
			SET title = $1, description = $2, event_type = $3, status = $4, location = $5,
				start_date = $6, end_date = $7, image_src = $8, image_alt = $9,
				tags = $10, tools = $11, key_points = $12,
				long_description = $13, register_link = $14, group_link = $15
			WHERE id = $16
		`

		cmdTag, err := tx.Exec(ctx, query,
			event.Title, event.Description, event.EventType, event.Status, event.Location,
			event.StartDate, event.EndDate, event.ImageSrc, event.ImageAlt,
			event.Tags, event.Tools, event.KeyPoints,
			event.LongDescription, event.RegisterLink, event.GroupLink,
			event.ID,
		)
		if err != nil {
			return fmt.Errorf("error updating event: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrEventNotFound
		}

		if children.Skills != nil {
			if err := syncSkills(ctx, tx, event.ID, *children.Skills); err != nil {
				return err
			}
		}
		if children.Benefits != nil {
			if err := syncBenefits(ctx, tx, event.ID, *children.Benefits); err != nil {
				return err
			}
		}
		if children.Sessions != nil {
			if err := syncSessions(ctx, tx, event.ID, *children.Sessions); err != nil {
				return err
			}
		}
		if children.Mentors != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM event_mentors WHERE event_id = $1`, event.ID); err != nil {
				return fmt.Errorf("error clearing mentor links: %w", err)
			}
			if err := replaceMentorLinks(ctx, tx, event.ID, *children.Mentors); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByID retrieves an event with its mentors, skills, benefits and sessions
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pg.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	if err := r.loadRelations(ctx, []*models.Event{event}); err != nil {
		return nil, err
	}

	return event, nil
}

// GetAll retrieves events with filtering and pagination, children included
func (r *EventRepository) GetAll(ctx context.Context, eventType, status, search *string, page, pageSize int) ([]*models.Event, int64, error) {
	query := `SELECT ` + eventColumns + `, COUNT(*) OVER() AS total_count FROM events WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if eventType != nil && *eventType != "" {
		query += fmt.Sprintf(" AND event_type = $%d", argIndex)
		args = append(args, *eventType)
		argIndex++
	}

	if status != nil && *status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	if search != nil && *search != "" {
		searchPattern := "%" + *search + "%"
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, searchPattern, searchPattern)
		argIndex += 2
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query += " ORDER BY start_date DESC, id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pg.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	var total int64
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.EventType, &event.Status,
			&event.Location, &event.StartDate, &event.EndDate,
			&event.ImageSrc, &event.ImageAlt, &event.Tags, &event.Tools, &event.KeyPoints,
			&event.LongDescription, &event.RegisterLink, &event.GroupLink, &event.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadRelations(ctx, events); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Delete removes an event. Events with registered participants are kept.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	var hasParticipants bool
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM participants WHERE event_id = $1)`,
		id).Scan(&hasParticipants)
	if err != nil {
		return fmt.Errorf("error checking event participants: %w", err)
	}

	if hasParticipants {
		return apperrors.ErrEventHasRegistrants
	}

	cmdTag, err := r.pg.Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Exists checks whether an event row exists
func (r *EventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking event existence: %w", err)
	}
	return exists, nil
}

// loadRelations attaches mentors, skills, benefits and sessions to the
// given events in bulk.
func (r *EventRepository) loadRelations(ctx context.Context, events []*models.Event) error {
	if len(events) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Event, len(events))
	ids := make([]int64, 0, len(events))
	for _, event := range events {
		event.Mentors = []*models.Mentor{}
		event.Skills = []*models.Skill{}
		event.Benefits = []*models.Benefit{}
		event.Sessions = []*models.Session{}
		byID[event.ID] = event
		ids = append(ids, event.ID)
	}

	rows, err := r.pg.Pool.Query(ctx, `
		SELECT em.event_id, m.id, m.name, m.occupation, m.description, m.image_src,
			m.story, m.instagram, m.linkedin, m.status
		FROM mentors m
		JOIN event_mentors em ON em.mentor_id = m.id
		WHERE em.event_id = ANY($1)
		ORDER BY m.id`, ids)
	if err != nil {
		return fmt.Errorf("error loading event mentors: %w", err)
	}
	for rows.Next() {
		var eventID int64
		var mentor models.Mentor
		if err := rows.Scan(&eventID, &mentor.ID, &mentor.Name, &mentor.Occupation,
			&mentor.Description, &mentor.ImageSrc, &mentor.Story,
			&mentor.Instagram, &mentor.LinkedIn, &mentor.Status); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning mentor row: %w", err)
		}
		byID[eventID].Mentors = append(byID[eventID].Mentors, &mentor)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pg.Pool.Query(ctx, `
		SELECT id, event_id, title, description
		FROM skills WHERE event_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("error loading skills: %w", err)
	}
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.EventID, &skill.Title, &skill.Description); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning skill row: %w", err)
		}
		byID[skill.EventID].Skills = append(byID[skill.EventID].Skills, &skill)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pg.Pool.Query(ctx, `
		SELECT id, event_id, title, text
		FROM benefits WHERE event_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("error loading benefits: %w", err)
	}
	for rows.Next() {
		var benefit models.Benefit
		if err := rows.Scan(&benefit.ID, &benefit.EventID, &benefit.Title, &benefit.Text); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning benefit row: %w", err)
		}
		byID[benefit.EventID].Benefits = append(byID[benefit.EventID].Benefits, &benefit)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pg.Pool.Query(ctx, `
		SELECT id, event_id, topic, description, start_time, end_time
		FROM sessions WHERE event_id = ANY($1) ORDER BY start_time, id`, ids)
	if err != nil {
		return fmt.Errorf("error loading sessions: %w", err)
	}
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(&session.ID, &session.EventID, &session.Topic,
			&session.Description, &session.Start, &session.End); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning session row: %w", err)
		}
		byID[session.EventID].Sessions = append(byID[session.EventID].Sessions, &session)
	}
	rows.Close()
	return rows.Err()
}

// scanEvent scans a single event row selected with eventColumns
func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.EventType, &event.Status,
		&event.Location, &event.StartDate, &event.EndDate,
		&event.ImageSrc, &event.ImageAlt, &event.Tags, &event.Tools, &event.KeyPoints,
		&event.LongDescription, &event.RegisterLink, &event.GroupLink, &event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// replaceMentorLinks inserts mentor links for the given ids, keeping only
// ids that resolve to a mentor row. Unresolved ids are logged and dropped.
func replaceMentorLinks(ctx context.Context, tx pgx.Tx, eventID int64, mentorIDs []int64) error {
	if len(mentorIDs) == 0 {
		return nil
	}

	cmdTag, err := tx.Exec(ctx, `
		INSERT INTO event_mentors (event_id, mentor_id)
		SELECT $1, m.id FROM mentors m WHERE m.id = ANY($2)
		ON CONFLICT DO NOTHING`, eventID, mentorIDs)
	if err != nil {
		return fmt.Errorf("error linking mentors: %w", err)
	}

	if int(cmdTag.RowsAffected()) < len(mentorIDs) {
		logger.Warn().
			Int64("event_id", eventID).
			Ints64("mentor_ids", mentorIDs).
			Int64("linked", cmdTag.RowsAffected()).
			Msg("Some mentor ids did not resolve and were dropped")
	}

	return nil
}

func syncSkills(ctx context.Context, tx pgx.Tx, eventID int64, incoming []models.Skill) error {
	existing, err := childIDs(ctx, tx, "skills", eventID)
	if err != nil {
		return fmt.Errorf("error listing skills: %w", err)
	}

	plan := planChildSync(existing, incoming, func(s models.Skill) *int64 {
		if s.ID == 0 {
			return nil
		}
		return &s.ID
	})
	logDropped(eventID, "skills", plan.DroppedIDs)

	if err := deleteChildren(ctx, tx, "skills", eventID, plan.DeleteIDs); err != nil {
		return fmt.Errorf("error deleting skills: %w", err)
	}
	for _, skill := range plan.Updates {
		_, err := tx.Exec(ctx, `
			UPDATE skills SET title = $1, description = $2
			WHERE id = $3 AND event_id = $4`,
			skill.Title, skill.Description, skill.ID, eventID)
		if err != nil {
			return fmt.Errorf("error updating skill: %w", err)
		}
	}
	for _, skill := range plan.Creates {
		if err := insertSkill(ctx, tx, eventID, &skill); err != nil {
			return err
		}
	}
	return nil
}

func syncBenefits(ctx context.Context, tx pgx.Tx, eventID int64, incoming []models.Benefit) error {
	existing, err := childIDs(ctx, tx, "benefits", eventID)
	if err != nil {
		return fmt.Errorf("error listing benefits: %w", err)
	}

	plan := planChildSync(existing, incoming, func(b models.Benefit) *int64 {
		if b.ID == 0 {
			return nil
		}
		return &b.ID
	})
	logDropped(eventID, "benefits", plan.DroppedIDs)

	if err := deleteChildren(ctx, tx, "benefits", eventID, plan.DeleteIDs); err != nil {
		return fmt.Errorf("error deleting benefits: %w", err)
	}
	for _, benefit := range plan.Updates {
		_, err := tx.Exec(ctx, `
			UPDATE benefits SET title = $1, text = $2
			WHERE id = $3 AND event_id = $4`,
			benefit.Title, benefit.Text, benefit.ID, eventID)
		if err != nil {
			return fmt.Errorf("error updating benefit: %w", err)
		}
	}
	for _, benefit := range plan.Creates {
		if err := insertBenefit(ctx, tx, eventID, &benefit); err != nil {
			return err
		}
	}
	return nil
}

func syncSessions(ctx context.Context, tx pgx.Tx, eventID int64, incoming []models.Session) error {
	existing, err := childIDs(ctx, tx, "sessions", eventID)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}

	plan := planChildSync(existing, incoming, func(s models.Session) *int64 {
		if s.ID == 0 {
			return nil
		}
		return &s.ID
	})
	logDropped(eventID, "sessions", plan.DroppedIDs)

	if err := deleteChildren(ctx, tx, "sessions", eventID, plan.DeleteIDs); err != nil {
		return fmt.Errorf("error deleting sessions: %w", err)
	}
	for _, session := range plan.Updates {
		_, err := tx.Exec(ctx, `
			UPDATE sessions SET topic = $1, description = $2, start_time = $3, end_time = $4
			WHERE id = $5 AND event_id = $6`,
			session.Topic, session.Description, session.Start, session.End, session.ID, eventID)
		if err != nil {
			return fmt.Errorf("error updating session: %w", err)
		}
	}
	for _, session := range plan.Creates {
		if err := insertSession(ctx, tx, eventID, &session); err != nil {
			return err
		}
	}
	return nil
}

func insertSkill(ctx context.Context, tx pgx.Tx, eventID int64, skill *models.Skill) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO skills (event_id, title, description)
		VALUES ($1, $2, $3) RETURNING id`,
		eventID, skill.Title, skill.Description).Scan(&skill.ID)
	if err != nil {
		return fmt.Errorf("error inserting skill: %w", err)
	}
	skill.EventID = eventID
	return nil
}

func insertBenefit(ctx context.Context, tx pgx.Tx, eventID int64, benefit *models.Benefit) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO benefits (event_id, title, text)
		VALUES ($1, $2, $3) RETURNING id`,
		eventID, benefit.Title, benefit.Text).Scan(&benefit.ID)
	if err != nil {
		return fmt.Errorf("error inserting benefit: %w", err)
	}
	benefit.EventID = eventID
	return nil
}

func insertSession(ctx context.Context, tx pgx.Tx, eventID int64, session *models.Session) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO sessions (event_id, topic, description, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		eventID, session.Topic, session.Description, session.Start, session.End).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("error inserting session: %w", err)
	}
	session.EventID = eventID
	return nil
}

func logDropped(eventID int64, table string, droppedIDs []int64) {
	if len(droppedIDs) == 0 {
		return
	}
	logger.Warn().
		Int64("event_id", eventID).
		Str("collection", table).
		Ints64("ids", droppedIDs).
		Msg("Unknown child ids in update were skipped")
}
