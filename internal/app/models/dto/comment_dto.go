package dto

import (
	"time"

	"github.com/shecodes/community-api/internal/app/models"
)

// CreateCommentRequest is the client payload for posting a comment. Author
// and avatar are taken from the authenticated user, not from the request.
type CreateCommentRequest struct {
	DiscussionID string `json:"discussionId" binding:"required"`
	ParentID     *int64 `json:"parentId,omitempty"`
	Text         string `json:"text" binding:"required"`
}

// CommentResponse is a comment annotated with like information for the
// requesting user
type CommentResponse struct {
	ID                   int64     `json:"id"`
	DiscussionID         string    `json:"discussionId"`
	ParentID             *int64    `json:"parentId,omitempty"`
	Author               string    `json:"author"`
	Text                 string    `json:"text"`
	Avatar               *string   `json:"avatar,omitempty"`
	Date                 time.Time `json:"date"`
	LikeCount            int64     `json:"likeCount"`
	IsLikedByCurrentUser bool      `json:"isLikedByCurrentUser"`
}

// NewCommentResponse builds a CommentResponse from a comment row and its
// like annotations
func NewCommentResponse(comment *models.Comment, likeCount int64, likedByUser bool) CommentResponse {
	return CommentResponse{
		ID:                   comment.ID,
		DiscussionID:         comment.DiscussionID,
		ParentID:             comment.ParentID,
		Author:               comment.Author,
		Text:                 comment.Text,
		Avatar:               comment.Avatar,
		Date:                 comment.CreatedAt,
		LikeCount:            likeCount,
		IsLikedByCurrentUser: likedByUser,
	}
}

// LikeResponse reports the state of a comment's like counter after a toggle
type LikeResponse struct {
	CommentID int64 `json:"commentId"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// LikedCommentsResponse lists the ids of comments the current user has liked
type LikedCommentsResponse struct {
	CommentIDs []int64 `json:"commentIds"`
}
