package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shecodes/community-api/internal/app/controllers"
	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	eventController *controllers.EventController,
	mentorController *controllers.MentorController,
	participantController *controllers.ParticipantController,
	commentController *controllers.CommentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	admin := string(models.RoleAdmin)

	// --- Public routes ---
	events := v1.Group("/events")
	{
		events.GET("", eventController.ListEvents)
		events.GET("/:id", eventController.GetEventByID)
	}

	mentors := v1.Group("/mentors")
	{
		mentors.GET("", mentorController.ListMentors)
		mentors.GET("/:id", mentorController.GetMentorByID)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Event management (admin only)
		eventsAdmin := authenticated.Group("/events")
		eventsAdmin.Use(authMiddleware.RoleRequired(admin))
		{
			eventsAdmin.POST("", eventController.CreateEvent)
			eventsAdmin.PATCH("/:id", eventController.UpdateEvent)
			eventsAdmin.DELETE("/:id", eventController.DeleteEvent)
			eventsAdmin.GET("/:id/participants", participantController.ListEventParticipants)
		}

		// Mentor management (admin only)
		mentorsAdmin := authenticated.Group("/mentors")
		mentorsAdmin.Use(authMiddleware.RoleRequired(admin))
		{
			mentorsAdmin.POST("", mentorController.CreateMentor)
			mentorsAdmin.PATCH("/:id", mentorController.UpdateMentor)
			mentorsAdmin.DELETE("/:id", mentorController.DeleteMentor)
		}

		// Registration routes
		participants := authenticated.Group("/participants")
		{
			participants.POST("", participantController.RegisterParticipant)
			participants.GET("/me", participantController.ListMyRegistrations)
			participants.GET("/:id", participantController.GetParticipantByID)
			participants.PUT("/:id/feedback", participantController.SubmitFeedback)

			// Registration management (admin only)
			participantsAdmin := participants.Group("")
			participantsAdmin.Use(authMiddleware.RoleRequired(admin))
			{
				participantsAdmin.PUT("/:id/status", participantController.UpdateParticipantStatus)
				participantsAdmin.POST("/:id/certificate", participantController.UploadCertificate)
				participantsAdmin.DELETE("", participantController.DeleteParticipants)
			}
		}

		// Discussion comment routes
		comments := authenticated.Group("/comments")
		{
			comments.POST("", commentController.CreateComment)
			comments.GET("/:id/thread", commentController.GetCommentThread)
			comments.POST("/:id/like", commentController.ToggleLike)
			comments.DELETE("/:id", commentController.DeleteComment)
		}

		discussions := authenticated.Group("/discussions")
		{
			discussions.GET("/:discussionId/comments", commentController.GetDiscussionComments)
			discussions.GET("/:discussionId/comments/liked", commentController.GetLikedComments)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
