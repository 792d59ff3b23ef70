package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/app/repositories"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
)

// fakeEventStore is an in-memory eventStore for service tests
type fakeEventStore struct {
	events       map[int64]*models.Event
	nextID       int64
	lastMentors  []int64
	lastChildren *repositories.EventChildSet
	deleteErr    error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[int64]*models.Event{}}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event, mentorIDs []int64) error {
	f.nextID++
	event.ID = f.nextID
	stored := *event
	f.events[event.ID] = &stored
	f.lastMentors = mentorIDs
	return nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.Event, children repositories.EventChildSet) error {
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	stored := *event
	f.events[event.ID] = &stored
	f.lastChildren = &children
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) GetAll(_ context.Context, _, _, _ *string, _, _ int) ([]*models.Event, int64, error) {
	var events []*models.Event
	for _, event := range f.events {
		events = append(events, event)
	}
	return events, int64(len(events)), nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func validCreateRequest() *dto.CreateEventRequest {
	start := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	return &dto.CreateEventRequest{
		Title:       "Intro to Go",
		Description: "A hands-on workshop",
		EventType:   "Workshop",
		Location:    "Jakarta",
		StartDate:   start,
		EndDate:     start.Add(4 * time.Hour),
	}
}

func TestCreateEvent_DefaultsStatusToUpcoming(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	event, err := svc.CreateEvent(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, models.EventStatusUpcoming, event.Status)
	require.NotZero(t, event.ID)
}

func TestCreateEvent_NormalizesNilCollections(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	event, err := svc.CreateEvent(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, event.Tags)
	require.NotNil(t, event.Tools)
	require.NotNil(t, event.KeyPoints)
	require.Empty(t, event.Tags)
}

func TestCreateEvent_PassesMentorIDsThrough(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	req := validCreateRequest()
	req.Mentors = []int64{3, 5}

	_, err := svc.CreateEvent(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 5}, store.lastMentors)
}

func TestCreateEvent_RejectsEndBeforeStart(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), zerolog.Nop())

	req := validCreateRequest()
	req.EndDate = req.StartDate.Add(-time.Hour)

	_, err := svc.CreateEvent(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateEvent_RejectsSessionEndBeforeStart(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), zerolog.Nop())

	req := validCreateRequest()
	req.Sessions = []dto.SessionInput{{
		Topic:       "Setup",
		Description: "Tooling",
		Start:       req.StartDate,
		End:         req.StartDate.Add(-time.Minute),
	}}

	_, err := svc.CreateEvent(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateEvent_PatchesOnlyProvidedFields(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	created, err := svc.CreateEvent(context.Background(), validCreateRequest())
	require.NoError(t, err)

	newTitle := "Intro to Go, second run"
	updated, err := svc.UpdateEvent(context.Background(), created.ID, &dto.UpdateEventRequest{Title: &newTitle})
	require.NoError(t, err)

	require.Equal(t, newTitle, updated.Title)
	require.Equal(t, created.Description, updated.Description)
	require.Equal(t, created.Location, updated.Location)
	require.Equal(t, created.EventType, updated.EventType)

	// No collections were provided, so none may be touched
	require.Nil(t, store.lastChildren.Skills)
	require.Nil(t, store.lastChildren.Benefits)
	require.Nil(t, store.lastChildren.Sessions)
	require.Nil(t, store.lastChildren.Mentors)
}

func TestUpdateEvent_MarksNewChildrenWithZeroID(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	created, err := svc.CreateEvent(context.Background(), validCreateRequest())
	require.NoError(t, err)

	existingID := int64(7)
	skills := []dto.SkillInput{
		{ID: &existingID, Title: "kept", Description: "updated text"},
		{Title: "new skill", Description: "fresh"},
	}
	_, err = svc.UpdateEvent(context.Background(), created.ID, &dto.UpdateEventRequest{Skills: &skills})
	require.NoError(t, err)

	require.NotNil(t, store.lastChildren.Skills)
	got := *store.lastChildren.Skills
	require.Len(t, got, 2)
	require.Equal(t, int64(7), got[0].ID)
	require.Zero(t, got[1].ID)
}

func TestUpdateEvent_EmptyCollectionClearsChildren(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	created, err := svc.CreateEvent(context.Background(), validCreateRequest())
	require.NoError(t, err)

	mentors := []int64{}
	_, err = svc.UpdateEvent(context.Background(), created.ID, &dto.UpdateEventRequest{Mentors: &mentors})
	require.NoError(t, err)

	require.NotNil(t, store.lastChildren.Mentors)
	require.Empty(t, *store.lastChildren.Mentors)
}

func TestUpdateEvent_RejectsDatesCrossingAfterPatch(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store, zerolog.Nop())

	created, err := svc.CreateEvent(context.Background(), validCreateRequest())
	require.NoError(t, err)

	badEnd := created.StartDate.Add(-time.Hour)
	_, err = svc.UpdateEvent(context.Background(), created.ID, &dto.UpdateEventRequest{EndDate: &badEnd})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateEvent_UnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), zerolog.Nop())

	_, err := svc.UpdateEvent(context.Background(), 999, &dto.UpdateEventRequest{})
	require.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestListEvents_RejectsUnknownFilters(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), zerolog.Nop())

	badType := "Hackathon"
	_, err := svc.ListEvents(context.Background(), &badType, nil, nil, 1, 10)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	badStatus := "cancelled"
	_, err = svc.ListEvents(context.Background(), nil, &badStatus, nil, 1, 10)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteEvent_KeepsEventsWithRegistrants(t *testing.T) {
	store := newFakeEventStore()
	store.deleteErr = apperrors.ErrEventHasRegistrants
	svc := NewEventService(store, zerolog.Nop())

	err := svc.DeleteEvent(context.Background(), 1)
	require.ErrorIs(t, err, apperrors.ErrEventHasRegistrants)
}
