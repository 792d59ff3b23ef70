package models

import "time"

// Event is the aggregate root for the 'events' table. Skills, benefits and
// sessions are owned children: they are created, updated and deleted only
// through the event and never outlive it. Mentors are shared references.
type Event struct {
	ID              int64       `json:"id" db:"id" example:"1"`
	Title           string      `json:"title" db:"title" example:"Intro to Go"`
	Description     string      `json:"description" db:"description"`
	EventType       EventType   `json:"eventType" db:"event_type" example:"Workshop"`
	Status          EventStatus `json:"status" db:"status" example:"upcoming"`
	Location        string      `json:"location" db:"location" example:"Jakarta"`
	StartDate       time.Time   `json:"startDate" db:"start_date"`
	EndDate         time.Time   `json:"endDate" db:"end_date"`
	ImageSrc        *string     `json:"imageSrc,omitempty" db:"image_src"`
	ImageAlt        *string     `json:"imageAlt,omitempty" db:"image_alt"`
	Tags            []string    `json:"tags" db:"tags"`
	Tools           []string    `json:"tools" db:"tools"`
	KeyPoints       []string    `json:"keyPoints" db:"key_points"`
	LongDescription *string     `json:"longDescription,omitempty" db:"long_description"`
	RegisterLink    *string     `json:"registerLink,omitempty" db:"register_link"`
	GroupLink       *string     `json:"groupLink,omitempty" db:"group_link"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`

	// Related entities
	Mentors  []*Mentor  `json:"mentors"`
	Skills   []*Skill   `json:"skills"`
	Benefits []*Benefit `json:"benefits"`
	Sessions []*Session `json:"sessions"`
}

// Skill is an event-owned child row in the 'skills' table
type Skill struct {
	ID          int64  `json:"id" db:"id"`
	EventID     int64  `json:"-" db:"event_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
}

// Benefit is an event-owned child row in the 'benefits' table
type Benefit struct {
	ID      int64  `json:"id" db:"id"`
	EventID int64  `json:"-" db:"event_id"`
	Title   string `json:"title" db:"title"`
	Text    string `json:"text" db:"text"`
}

// Session is an event-owned child row in the 'sessions' table
type Session struct {
	ID          int64     `json:"id" db:"id"`
	EventID     int64     `json:"-" db:"event_id"`
	Topic       string    `json:"topic" db:"topic"`
	Description string    `json:"description" db:"description"`
	Start       time.Time `json:"start" db:"start_time"`
	End         time.Time `json:"end" db:"end_time"`
}
