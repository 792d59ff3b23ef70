package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/app/services"
	"github.com/shecodes/community-api/internal/middleware"
)

// CommentController handles discussion comment operations
type CommentController struct {
	commentService services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// CreateComment posts a comment or a reply
// @Summary Create a comment
// @Description Posts a comment to a discussion. With a parentId the comment becomes a reply; the parent must exist in the same discussion.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommentRequest true "Comment payload"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or parent comment missing"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.commentService.CreateComment(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      comment,
		Timestamp: time.Now(),
	})
}

// GetDiscussionComments lists a discussion's comments
// @Summary List discussion comments
// @Description Retrieves every comment of a discussion, oldest first, annotated with like counts and the requesting user's likes
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param discussionId path string true "Discussion ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /discussions/{discussionId}/comments [get]
func (c *CommentController) GetDiscussionComments(ctx *gin.Context) {
	discussionID := ctx.Param("discussionId")
	userID, _ := middleware.CurrentUserID(ctx)

	comments, err := c.commentService.GetDiscussionComments(ctx, discussionID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      comments,
		Timestamp: time.Now(),
	})
}

// GetCommentThread retrieves a comment with its reply subtree
// @Summary Get a comment thread
// @Description Retrieves a comment and every transitive reply beneath it
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Root comment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Thread retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid comment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id}/thread [get]
func (c *CommentController) GetCommentThread(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Comment ID")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)

	comments, err := c.commentService.GetCommentThread(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      comments,
		Timestamp: time.Now(),
	})
}

// DeleteComment deletes a comment with its replies
// @Summary Delete a comment
// @Description Deletes a comment and its whole reply subtree. Only the author or an admin may delete.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204 "Comment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid comment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author or an admin"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Comment ID")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	role := ctx.GetString(middleware.ContextRole)

	if err := c.commentService.DeleteComment(ctx, id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ToggleLike flips the user's like on a comment
// @Summary Toggle a comment like
// @Description Likes a comment the user has not liked yet, removes the like otherwise, and reports the resulting state
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse} "Like toggled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid comment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id}/like [post]
func (c *CommentController) ToggleLike(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Comment ID")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	like, err := c.commentService.ToggleLike(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      like,
		Timestamp: time.Now(),
	})
}

// GetLikedComments lists the user's liked comments in a discussion
// @Summary List my liked comments
// @Description Retrieves the ids of the discussion's comments the authenticated user has liked
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param discussionId path string true "Discussion ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikedCommentsResponse} "Liked comments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /discussions/{discussionId}/comments/liked [get]
func (c *CommentController) GetLikedComments(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	discussionID := ctx.Param("discussionId")

	liked, err := c.commentService.GetLikedComments(ctx, userID, discussionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      liked,
		Timestamp: time.Now(),
	})
}
