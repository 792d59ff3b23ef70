package dto

import "time"

// CreateParticipantRequest represents an event registration payload
type CreateParticipantRequest struct {
	EventID          int64      `json:"eventId" binding:"required"`
	MemberID         int64      `json:"memberId" binding:"required"`
	RegistrationDate *time.Time `json:"registrationDate,omitempty"`
	Status           *string    `json:"status,omitempty" binding:"omitempty,participantstatus"`
}

// UpdateParticipantStatusRequest updates only the registration status
type UpdateParticipantStatusRequest struct {
	Status string `json:"status" binding:"required,participantstatus"`
}

// SubmitFeedbackRequest carries a participant's feedback text
type SubmitFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// DeleteParticipantsRequest is a batch delete payload of participant ids
type DeleteParticipantsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// BatchDeleteResponse reports how many rows a batch delete removed
type BatchDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// CertificateResponse carries the stored certificate URL after an upload
type CertificateResponse struct {
	ParticipantID  int64  `json:"participantId"`
	CertificateURL string `json:"certificateUrl"`
}
