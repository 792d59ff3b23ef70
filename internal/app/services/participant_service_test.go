package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shecodes/community-api/internal/app/models"
	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/pkg/apperrors"
)

// fakeParticipantStore is an in-memory participantStore for service tests
type fakeParticipantStore struct {
	participants map[int64]*models.Participant
	registered   map[[2]int64]bool
	nextID       int64
	createErr    error
	setCertErr   error
}

func newFakeParticipantStore() *fakeParticipantStore {
	return &fakeParticipantStore{
		participants: map[int64]*models.Participant{},
		registered:   map[[2]int64]bool{},
	}
}

func (f *fakeParticipantStore) Create(_ context.Context, p *models.Participant) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.registered[[2]int64{p.EventID, p.MemberID}] {
		return apperrors.ErrDuplicateRegistration
	}
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.participants[p.ID] = &stored
	f.registered[[2]int64{p.EventID, p.MemberID}] = true
	return nil
}

func (f *fakeParticipantStore) GetByID(_ context.Context, id int64) (*models.Participant, error) {
	p, ok := f.participants[id]
	if !ok {
		return nil, apperrors.ErrParticipantNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeParticipantStore) ExistsByEventAndMember(_ context.Context, eventID, memberID int64) (bool, error) {
	return f.registered[[2]int64{eventID, memberID}], nil
}

func (f *fakeParticipantStore) ListByEvent(_ context.Context, eventID int64, _ *string, _, _ int) ([]*models.Participant, int64, error) {
	var out []*models.Participant
	for _, p := range f.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeParticipantStore) ListByMember(_ context.Context, memberID int64, _, _ int) ([]*models.Participant, int64, error) {
	var out []*models.Participant
	for _, p := range f.participants {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeParticipantStore) UpdateStatus(_ context.Context, id int64, status models.ParticipantStatus) error {
	p, ok := f.participants[id]
	if !ok {
		return apperrors.ErrParticipantNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeParticipantStore) SetCertificate(_ context.Context, id int64, certificateURL *string) error {
	if f.setCertErr != nil {
		return f.setCertErr
	}
	p, ok := f.participants[id]
	if !ok {
		return apperrors.ErrParticipantNotFound
	}
	p.CertificateURL = certificateURL
	return nil
}

func (f *fakeParticipantStore) SetFeedback(_ context.Context, id int64, feedback string) error {
	p, ok := f.participants[id]
	if !ok {
		return apperrors.ErrParticipantNotFound
	}
	p.Feedback = &feedback
	return nil
}

func (f *fakeParticipantStore) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if p, ok := f.participants[id]; ok {
			delete(f.registered, [2]int64{p.EventID, p.MemberID})
			delete(f.participants, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeEventReader serves a single event, mirroring the reader surface the
// registrar needs for validation and error context
type fakeEventReader struct {
	event *models.Event
}

func (f *fakeEventReader) GetByID(_ context.Context, id int64) (*models.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *f.event
	return &copied, nil
}

func (f *fakeEventReader) Exists(_ context.Context, id int64) (bool, error) {
	return f.event != nil && f.event.ID == id, nil
}

// fakeStorage records uploads and deletions instead of touching disk
type fakeStorage struct {
	nextURL   string
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeStorage) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, f.nextURL)
	return f.nextURL, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicURL string) (bool, error) {
	f.deleted = append(f.deleted, publicURL)
	return true, nil
}

func newParticipantService(store *fakeParticipantStore, storage *fakeStorage) ParticipantService {
	return NewParticipantService(
		store,
		&fakeEventReader{event: &models.Event{ID: 1, Title: "Go for Beginners"}},
		&fakeUserReader{users: map[int64]*models.User{
			2: {ID: 2, Email: "ada@shecodes.id", Name: "Ada Lovelace", Role: models.RoleMember},
		}},
		storage,
		zerolog.Nop(),
	)
}

func TestRegisterParticipant_Defaults(t *testing.T) {
	store := newFakeParticipantStore()
	svc := newParticipantService(store, &fakeStorage{})

	before := time.Now()
	p, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{
		EventID:  1,
		MemberID: 2,
	})
	require.NoError(t, err)

	require.Equal(t, models.ParticipantStatusRegistered, p.Status)
	require.False(t, p.RegistrationDate.Before(before))
}

func TestRegisterParticipant_UnknownEvent(t *testing.T) {
	svc := newParticipantService(newFakeParticipantStore(), &fakeStorage{})

	_, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 42, MemberID: 2})
	require.ErrorIs(t, err, apperrors.ErrEventNotFound)
	require.Contains(t, err.Error(), "42")
}

func TestRegisterParticipant_UnknownMember(t *testing.T) {
	svc := newParticipantService(newFakeParticipantStore(), &fakeStorage{})

	_, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 1, MemberID: 77})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	require.Contains(t, err.Error(), "77")
}

func TestRegisterParticipant_RejectsDuplicate(t *testing.T) {
	store := newFakeParticipantStore()
	svc := newParticipantService(store, &fakeStorage{})

	req := &dto.CreateParticipantRequest{EventID: 1, MemberID: 2}
	_, err := svc.RegisterParticipant(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.RegisterParticipant(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)
	require.Equal(t, "User Ada Lovelace is already registered for event 'Go for Beginners'.", err.Error())
}

func TestRegisterParticipant_SurfacesConstraintRace(t *testing.T) {
	// The pre-check passes but the insert loses the race and the unique
	// constraint fires. The caller still sees a duplicate registration
	// carrying the member's name and the event title.
	store := newFakeParticipantStore()
	store.createErr = apperrors.ErrDuplicateRegistration
	svc := newParticipantService(store, &fakeStorage{})

	_, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 1, MemberID: 2})
	require.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)
	require.Contains(t, err.Error(), "Ada Lovelace")
	require.Contains(t, err.Error(), "Go for Beginners")
}

func TestUploadCertificate_ReplacesPreviousBlob(t *testing.T) {
	store := newFakeParticipantStore()
	storage := &fakeStorage{nextURL: "/uploads/new.pdf"}
	svc := newParticipantService(store, storage)

	registered, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 1, MemberID: 2})
	require.NoError(t, err)

	oldURL := "/uploads/old.pdf"
	require.NoError(t, store.SetCertificate(context.Background(), registered.ID, &oldURL))

	resp, err := svc.UploadCertificate(context.Background(), registered.ID, []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "/uploads/new.pdf", resp.CertificateURL)
	require.Contains(t, storage.deleted, oldURL)
}

func TestUploadCertificate_CleansUpOrphanedBlob(t *testing.T) {
	store := newFakeParticipantStore()
	storage := &fakeStorage{nextURL: "/uploads/new.pdf"}
	svc := newParticipantService(store, storage)

	registered, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 1, MemberID: 2})
	require.NoError(t, err)

	store.setCertErr = apperrors.NewStorageError("attach failed")

	_, err = svc.UploadCertificate(context.Background(), registered.ID, []byte("pdf"), "application/pdf")
	require.Error(t, err)
	require.Contains(t, storage.deleted, "/uploads/new.pdf")
}

func TestUploadCertificate_UnknownParticipant(t *testing.T) {
	svc := newParticipantService(newFakeParticipantStore(), &fakeStorage{})

	_, err := svc.UploadCertificate(context.Background(), 404, []byte("pdf"), "application/pdf")
	require.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
}

func TestDeleteParticipants_EmptyIDSetIsNoOp(t *testing.T) {
	store := newFakeParticipantStore()
	svc := newParticipantService(store, &fakeStorage{})

	registered, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 1, MemberID: 2})
	require.NoError(t, err)

	deleted, err := svc.DeleteParticipants(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, deleted)

	// Existing registrations are untouched
	_, err = store.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
}

func TestDeleteParticipants_ReportsDeletedCount(t *testing.T) {
	store := newFakeParticipantStore()
	svc := newParticipantService(store, &fakeStorage{})

	first, err := svc.RegisterParticipant(context.Background(), &dto.CreateParticipantRequest{EventID: 1, MemberID: 2})
	require.NoError(t, err)

	deleted, err := svc.DeleteParticipants(context.Background(), []int64{first.ID, 999})
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}

func TestListEventParticipants_UnknownEvent(t *testing.T) {
	svc := newParticipantService(newFakeParticipantStore(), &fakeStorage{})

	_, err := svc.ListEventParticipants(context.Background(), 404, nil, 1, 10)
	require.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
