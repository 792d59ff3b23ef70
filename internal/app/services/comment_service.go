package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
)

// commentStore is the persistence surface the comment service depends on
type commentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByDiscussion(ctx context.Context, discussionID string) ([]*models.Comment, error)
	ListThread(ctx context.Context, rootID int64) ([]*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, userID, commentID int64) (bool, int64, error)
	LikeCounts(ctx context.Context, commentIDs []int64) (map[int64]int64, error)
	LikedCommentIDs(ctx context.Context, userID int64, discussionID string) ([]int64, error)
}

// userReader loads users for comment attribution
type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// CommentService defines the interface for discussion comment operations
type CommentService interface {
	CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetDiscussionComments(ctx context.Context, discussionID string, currentUserID int64) ([]dto.CommentResponse, error)
	GetCommentThread(ctx context.Context, rootID, currentUserID int64) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, id, userID int64, role string) error
	ToggleLike(ctx context.Context, userID, commentID int64) (*dto.LikeResponse, error)
	GetLikedComments(ctx context.Context, userID int64, discussionID string) (*dto.LikedCommentsResponse, error)
}

// commentServiceImpl implements CommentService
type commentServiceImpl struct {
	commentRepo commentStore
	userRepo    userReader
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo commentStore, userRepo userReader, logger zerolog.Logger) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateComment posts a comment or a reply. Author name and avatar come from
// the authenticated user. A reply must name an existing parent in the same
// discussion.
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrCommentNotFound) {
				return nil, apperrors.ErrParentCommentNotFound
			}
			return nil, err
		}
		if parent.DiscussionID != req.DiscussionID {
			return nil, apperrors.NewValidationError("parent comment belongs to a different discussion")
		}
	}

	comment := &models.Comment{
		DiscussionID: req.DiscussionID,
		ParentID:     req.ParentID,
		Author:       user.Name,
		Text:         req.Text,
		Avatar:       user.Avatar,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error().Err(err).Str("discussion_id", req.DiscussionID).Msg("Failed to create comment")
		return nil, err
	}

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Str("discussion_id", comment.DiscussionID).
		Msg("Comment created")

	response := dto.NewCommentResponse(comment, 0, false)
	return &response, nil
}

// GetDiscussionComments retrieves every comment of a discussion annotated
// with like counts and the requesting user's own likes
func (s *commentServiceImpl) GetDiscussionComments(ctx context.Context, discussionID string, currentUserID int64) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.ListByDiscussion(ctx, discussionID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	return s.annotate(ctx, comments, currentUserID)
}

// GetCommentThread retrieves a comment with its whole reply subtree
func (s *commentServiceImpl) GetCommentThread(ctx context.Context, rootID, currentUserID int64) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.ListThread(ctx, rootID)
	if err != nil {
		return nil, err
	}

	return s.annotate(ctx, comments, currentUserID)
}

// DeleteComment removes a comment and its reply subtree. Admins may delete
// any comment; everyone else only their own.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, id, userID int64, role string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if role != string(models.RoleAdmin) {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Name != comment.Author {
			return apperrors.NewForbiddenError("only the author or an admin can delete a comment")
		}
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("comment_id", id).Msg("Comment deleted with its replies")
	return nil
}

// ToggleLike flips the user's like on a comment and reports the new state
func (s *commentServiceImpl) ToggleLike(ctx context.Context, userID, commentID int64) (*dto.LikeResponse, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	liked, likeCount, err := s.commentRepo.ToggleLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeResponse{
		CommentID: commentID,
		Liked:     liked,
		LikeCount: likeCount,
	}, nil
}

// GetLikedComments lists the discussion's comments the user has liked
func (s *commentServiceImpl) GetLikedComments(ctx context.Context, userID int64, discussionID string) (*dto.LikedCommentsResponse, error) {
	ids, err := s.commentRepo.LikedCommentIDs(ctx, userID, discussionID)
	if err != nil {
		return nil, err
	}

	return &dto.LikedCommentsResponse{CommentIDs: ids}, nil
}

// annotate joins comments with their like counts and the user's own likes
func (s *commentServiceImpl) annotate(ctx context.Context, comments []*models.Comment, currentUserID int64) ([]dto.CommentResponse, error) {
	responses := make([]dto.CommentResponse, 0, len(comments))
	if len(comments) == 0 {
		return responses, nil
	}

	ids := make([]int64, 0, len(comments))
	discussionID := comments[0].DiscussionID
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}

	counts, err := s.commentRepo.LikeCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}

	likedByUser := map[int64]bool{}
	if currentUserID > 0 {
		likedIDs, err := s.commentRepo.LikedCommentIDs(ctx, currentUserID, discussionID)
		if err != nil {
			return nil, fmt.Errorf("error listing user likes: %w", err)
		}
		for _, id := range likedIDs {
			likedByUser[id] = true
		}
	}

	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment, counts[comment.ID], likedByUser[comment.ID]))
	}

	return responses, nil
}
