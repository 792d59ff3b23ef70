package dto

import (
	"time"

	"github.com/shecodes/community-api/internal/app/models"
)

// SkillInput is a skill entry in an event payload. A nil ID means "create a
// new skill"; a non-nil ID addresses an existing one during reconciliation.
type SkillInput struct {
	ID          *int64 `json:"id,omitempty"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// BenefitInput is a benefit entry in an event payload
type BenefitInput struct {
	ID    *int64 `json:"id,omitempty"`
	Title string `json:"title" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

// SessionInput is a session entry in an event payload
type SessionInput struct {
	ID          *int64    `json:"id,omitempty"`
	Topic       string    `json:"topic" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
}

// CreateEventRequest represents the payload to create an event with its
// owned children and mentor references
type CreateEventRequest struct {
	Title           string         `json:"title" binding:"required"`
	Description     string         `json:"description" binding:"required"`
	EventType       string         `json:"eventType" binding:"required,eventtype"`
	Status          string         `json:"status" binding:"omitempty,eventstatus"`
	Location        string         `json:"location" binding:"required"`
	StartDate       time.Time      `json:"startDate" binding:"required"`
	EndDate         time.Time      `json:"endDate" binding:"required"`
	ImageSrc        *string        `json:"imageSrc,omitempty"`
	ImageAlt        *string        `json:"imageAlt,omitempty"`
	Tags            []string       `json:"tags"`
	Tools           []string       `json:"tools"`
	KeyPoints       []string       `json:"keyPoints"`
	LongDescription *string        `json:"longDescription,omitempty"`
	RegisterLink    *string        `json:"registerLink,omitempty"`
	GroupLink       *string        `json:"groupLink,omitempty"`
	Mentors         []int64        `json:"mentors"`
	Skills          []SkillInput   `json:"skills"`
	Benefits        []BenefitInput `json:"benefits"`
	Sessions        []SessionInput `json:"sessions"`
}

// UpdateEventRequest represents a partial event update. Nil fields are left
// untouched. A non-nil Mentors/Skills/Benefits/Sessions slice (even empty)
// replaces or reconciles the full collection.
type UpdateEventRequest struct {
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	EventType       *string         `json:"eventType,omitempty" binding:"omitempty,eventtype"`
	Status          *string         `json:"status,omitempty" binding:"omitempty,eventstatus"`
	Location        *string         `json:"location,omitempty"`
	StartDate       *time.Time      `json:"startDate,omitempty"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	ImageSrc        *string         `json:"imageSrc,omitempty"`
	ImageAlt        *string         `json:"imageAlt,omitempty"`
	Tags            *[]string       `json:"tags,omitempty"`
	Tools           *[]string       `json:"tools,omitempty"`
	KeyPoints       *[]string       `json:"keyPoints,omitempty"`
	LongDescription *string         `json:"longDescription,omitempty"`
	RegisterLink    *string         `json:"registerLink,omitempty"`
	GroupLink       *string         `json:"groupLink,omitempty"`
	Mentors         *[]int64        `json:"mentors,omitempty"`
	Skills          *[]SkillInput   `json:"skills,omitempty"`
	Benefits        *[]BenefitInput `json:"benefits,omitempty"`
	Sessions        *[]SessionInput `json:"sessions,omitempty"`
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events     []*models.Event `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}
