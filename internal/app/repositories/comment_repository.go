package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/db"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
	"github.com/shecodes/community-api/internal/pkg/dberrors"
)

const commentColumns = `id, discussion_id, parent_id, author, text, avatar, created_at`

// CommentRepository handles database operations for comments and likes
type CommentRepository struct {
	pg *db.PostgresDB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(pg *db.PostgresDB) *CommentRepository {
	return &CommentRepository{pg: pg}
}

// Create inserts a comment. A reply whose parent vanished between
// validation and insert surfaces as a missing parent, not a server error.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (discussion_id, parent_id, author, text, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pg.Pool.QueryRow(ctx, query,
		comment.DiscussionID, comment.ParentID, comment.Author, comment.Text, comment.Avatar,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrParentCommentNotFound
		}
		return fmt.Errorf("error inserting comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.pg.Pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.DiscussionID, &comment.ParentID,
		&comment.Author, &comment.Text, &comment.Avatar, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}

	return &comment, nil
}

// ListByDiscussion retrieves every comment of a discussion, oldest first
func (r *CommentRepository) ListByDiscussion(ctx context.Context, discussionID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE discussion_id = $1 ORDER BY created_at, id`

	rows, err := r.pg.Pool.Query(ctx, query, discussionID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// ListThread retrieves a comment and every transitive reply beneath it
func (r *CommentRepository) ListThread(ctx context.Context, rootID int64) ([]*models.Comment, error) {
	query := `
		WITH RECURSIVE thread AS (
			SELECT ` + commentColumns + ` FROM comments WHERE id = $1
			UNION ALL
			SELECT c.id, c.discussion_id, c.parent_id, c.author, c.text, c.avatar, c.created_at
			FROM comments c
			JOIN thread t ON c.parent_id = t.id
		)
		SELECT ` + commentColumns + ` FROM thread ORDER BY created_at, id
	`

	rows, err := r.pg.Pool.Query(ctx, query, rootID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	comments, err := collectComments(rows)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, apperrors.ErrCommentNotFound
	}

	return comments, nil
}

// Delete removes a comment. The parent_id foreign key cascades the delete
// down the whole reply subtree, and comment_likes rows go with each comment.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.pg.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// ToggleLike flips a user's like on a comment inside one transaction and
// returns the resulting state with the fresh like count. Concurrent toggles
// serialize on the (user_id, comment_id) primary key.
func (r *CommentRepository) ToggleLike(ctx context.Context, userID, commentID int64) (bool, int64, error) {
	var liked bool
	var likeCount int64

	err := r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`,
			userID, commentID)
		if err != nil {
			return fmt.Errorf("error removing like: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			insertTag, err := tx.Exec(ctx, `
				INSERT INTO comment_likes (user_id, comment_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`,
				userID, commentID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrCommentNotFound
				}
				return fmt.Errorf("error adding like: %w", err)
			}
			liked = insertTag.RowsAffected() > 0
		}

		return tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`,
			commentID).Scan(&likeCount)
	})
	if err != nil {
		return false, 0, err
	}

	return liked, likeCount, nil
}

// LikeCounts returns the like count for each given comment id. Comments
// without likes are absent from the result.
func (r *CommentRepository) LikeCounts(ctx context.Context, commentIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	if len(commentIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pg.Pool.Query(ctx, `
		SELECT comment_id, COUNT(*) FROM comment_likes
		WHERE comment_id = ANY($1)
		GROUP BY comment_id`, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var commentID, count int64
		if err := rows.Scan(&commentID, &count); err != nil {
			return nil, fmt.Errorf("error scanning like count: %w", err)
		}
		counts[commentID] = count
	}

	return counts, rows.Err()
}

// LikedCommentIDs lists the comments of a discussion the user has liked
func (r *CommentRepository) LikedCommentIDs(ctx context.Context, userID int64, discussionID string) ([]int64, error) {
	rows, err := r.pg.Pool.Query(ctx, `
		SELECT cl.comment_id
		FROM comment_likes cl
		JOIN comments c ON c.id = cl.comment_id
		WHERE cl.user_id = $1 AND c.discussion_id = $2
		ORDER BY cl.comment_id`, userID, discussionID)
	if err != nil {
		return nil, fmt.Errorf("error listing liked comments: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning liked comment id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func collectComments(rows pgx.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.DiscussionID, &comment.ParentID,
			&comment.Author, &comment.Text, &comment.Avatar, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
