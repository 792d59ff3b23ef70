package models

import "time"

// Participant represents one user's registration to one event, based on the
// 'participants' table. At most one row may exist per (event_id, member_id);
// the uq_participants_event_member constraint is the authoritative guard.
type Participant struct {
	ID               int64             `json:"id" db:"id" example:"1"`
	EventID          int64             `json:"eventId" db:"event_id" example:"1"`
	MemberID         int64             `json:"memberId" db:"member_id" example:"1"`
	RegistrationDate time.Time         `json:"registrationDate" db:"registration_date"`
	Status           ParticipantStatus `json:"status" db:"status" example:"registered"`
	CertificateURL   *string           `json:"certificateUrl,omitempty" db:"certificate_url"`
	Feedback         *string           `json:"feedback,omitempty" db:"feedback"`

	// Related entities
	Event  *Event `json:"event,omitempty"`
	Member *User  `json:"member,omitempty"`
}
