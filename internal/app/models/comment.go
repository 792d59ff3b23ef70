package models

import "time"

// Comment is a row in the self-referential 'comments' table. A nil ParentID
// marks a top-level comment; replies point at their parent and are removed
// with it (the parent_id foreign key cascades down the subtree).
type Comment struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	DiscussionID string    `json:"discussionId" db:"discussion_id" example:"alumni-stories"`
	ParentID     *int64    `json:"parentId,omitempty" db:"parent_id"`
	Author       string    `json:"author" db:"author" example:"Ada Lovelace"`
	Text         string    `json:"text" db:"text"`
	Avatar       *string   `json:"avatar,omitempty" db:"avatar"`
	CreatedAt    time.Time `json:"date" db:"created_at"`
}

// CommentLike is a row in the 'comment_likes' join table. Identity is the
// (user_id, comment_id) pair itself; there is no surrogate id.
type CommentLike struct {
	UserID    int64 `json:"userId" db:"user_id"`
	CommentID int64 `json:"commentId" db:"comment_id"`
}
