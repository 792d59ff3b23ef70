package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/shecodes/community-api/internal/app/models"
)

// Allowed enum values for request binding
var (
	EventTypes = []models.EventType{
		models.EventTypeWorkshop,
		models.EventTypeSeminar,
		models.EventTypeWebinar,
		models.EventTypeMentorship,
	}

	EventStatuses = []models.EventStatus{
		models.EventStatusUpcoming,
		models.EventStatusOngoing,
		models.EventStatusPast,
	}

	ParticipantStatuses = []models.ParticipantStatus{
		models.ParticipantStatusRegistered,
		models.ParticipantStatusAttended,
		models.ParticipantStatusCancelled,
	}
)

// IsValidEventType reports whether the value is a known event type
func IsValidEventType(value string) bool {
	for _, t := range EventTypes {
		if string(t) == value {
			return true
		}
	}
	return false
}

// IsValidEventStatus reports whether the value is a known event status
func IsValidEventStatus(value string) bool {
	for _, s := range EventStatuses {
		if string(s) == value {
			return true
		}
	}
	return false
}

// IsValidParticipantStatus reports whether the value is a known participant status
func IsValidParticipantStatus(value string) bool {
	for _, s := range ParticipantStatuses {
		if string(s) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers the enum validators used by the request
// DTO binding tags (eventtype, eventstatus, participantstatus) with Gin's
// underlying validator engine.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return IsValidEventType(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("eventstatus", func(fl validator.FieldLevel) bool {
		return IsValidEventStatus(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("participantstatus", func(fl validator.FieldLevel) bool {
		return IsValidParticipantStatus(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
