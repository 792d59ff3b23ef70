package models

// RoleType defines the user role type
type RoleType string

const (
	RoleMentor RoleType = "mentor"
	RoleAdmin  RoleType = "admin"
	RoleMember RoleType = "member"
	RoleAlumni RoleType = "alumni"
)

// EventType defines the kind of event
type EventType string

const (
	EventTypeWorkshop   EventType = "Workshop"
	EventTypeSeminar    EventType = "Seminar"
	EventTypeWebinar    EventType = "Webinar"
	EventTypeMentorship EventType = "Mentorship"
)

// EventStatus defines the lifecycle phase of an event
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusOngoing  EventStatus = "ongoing"
	EventStatusPast     EventStatus = "past"
)

// ParticipantStatus defines the registration state of a participant
type ParticipantStatus string

const (
	ParticipantStatusRegistered ParticipantStatus = "registered"
	ParticipantStatusAttended   ParticipantStatus = "attended"
	ParticipantStatusCancelled  ParticipantStatus = "cancelled"
)
