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

// fakeCommentStore is an in-memory commentStore for service tests
type fakeCommentStore struct {
	comments map[int64]*models.Comment
	likes    map[int64]map[int64]bool // commentID -> userID -> liked
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{
		comments: map[int64]*models.Comment{},
		likes:    map[int64]map[int64]bool{},
	}
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentStore) ListByDiscussion(_ context.Context, discussionID string) ([]*models.Comment, error) {
	var out []*models.Comment
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.comments[id]; ok && c.DiscussionID == discussionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) ListThread(_ context.Context, rootID int64) ([]*models.Comment, error) {
	root, ok := f.comments[rootID]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	out := []*models.Comment{root}
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.comments[id]; ok && c.ParentID != nil && *c.ParentID == rootID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentStore) ToggleLike(_ context.Context, userID, commentID int64) (bool, int64, error) {
	if _, ok := f.comments[commentID]; !ok {
		return false, 0, apperrors.ErrCommentNotFound
	}
	if f.likes[commentID] == nil {
		f.likes[commentID] = map[int64]bool{}
	}
	liked := !f.likes[commentID][userID]
	if liked {
		f.likes[commentID][userID] = true
	} else {
		delete(f.likes[commentID], userID)
	}
	return liked, int64(len(f.likes[commentID])), nil
}

func (f *fakeCommentStore) LikeCounts(_ context.Context, commentIDs []int64) (map[int64]int64, error) {
	counts := map[int64]int64{}
	for _, id := range commentIDs {
		if n := len(f.likes[id]); n > 0 {
			counts[id] = int64(n)
		}
	}
	return counts, nil
}

func (f *fakeCommentStore) LikedCommentIDs(_ context.Context, userID int64, discussionID string) ([]int64, error) {
	var ids []int64
	for commentID, users := range f.likes {
		if users[userID] && f.comments[commentID] != nil && f.comments[commentID].DiscussionID == discussionID {
			ids = append(ids, commentID)
		}
	}
	return ids, nil
}

type fakeUserReader struct {
	users map[int64]*models.User
}

func (f *fakeUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func commentFixtures() (*fakeCommentStore, *fakeUserReader, CommentService) {
	store := newFakeCommentStore()
	users := &fakeUserReader{users: map[int64]*models.User{
		1: {ID: 1, Email: "ada@shecodes.id", Name: "Ada Lovelace", Role: models.RoleMember},
		2: {ID: 2, Email: "admin@shecodes.id", Name: "Community Admin", Role: models.RoleAdmin},
		3: {ID: 3, Email: "grace@shecodes.id", Name: "Grace Hopper", Role: models.RoleMember},
	}}
	svc := NewCommentService(store, users, zerolog.Nop())
	return store, users, svc
}

func TestCreateComment_TakesAuthorFromAuthenticatedUser(t *testing.T) {
	_, _, svc := commentFixtures()

	resp, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "Loved this one",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", resp.Author)
	require.Equal(t, "alumni-stories", resp.DiscussionID)
	require.Zero(t, resp.LikeCount)
}

func TestCreateComment_UnknownParent(t *testing.T) {
	_, _, svc := commentFixtures()

	missing := int64(404)
	_, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		ParentID:     &missing,
		Text:         "replying into the void",
	})
	require.ErrorIs(t, err, apperrors.ErrParentCommentNotFound)
}

func TestCreateComment_ParentFromAnotherDiscussion(t *testing.T) {
	_, _, svc := commentFixtures()

	parent, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "first",
	})
	require.NoError(t, err)

	_, err = svc.CreateComment(context.Background(), 3, &dto.CreateCommentRequest{
		DiscussionID: "career-advice",
		ParentID:     &parent.ID,
		Text:         "crossing discussions",
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteComment_AuthorMayDelete(t *testing.T) {
	_, _, svc := commentFixtures()

	comment, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "mine",
	})
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), comment.ID, 1, string(models.RoleMember))
	require.NoError(t, err)
}

func TestDeleteComment_AdminMayDeleteAnything(t *testing.T) {
	_, _, svc := commentFixtures()

	comment, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "mine",
	})
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), comment.ID, 2, string(models.RoleAdmin))
	require.NoError(t, err)
}

func TestDeleteComment_StrangerIsRejected(t *testing.T) {
	_, _, svc := commentFixtures()

	comment, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "mine",
	})
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), comment.ID, 3, string(models.RoleMember))
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestToggleLike_FlipsState(t *testing.T) {
	_, _, svc := commentFixtures()

	comment, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "likeable",
	})
	require.NoError(t, err)

	first, err := svc.ToggleLike(context.Background(), 3, comment.ID)
	require.NoError(t, err)
	require.True(t, first.Liked)
	require.Equal(t, int64(1), first.LikeCount)

	second, err := svc.ToggleLike(context.Background(), 3, comment.ID)
	require.NoError(t, err)
	require.False(t, second.Liked)
	require.Zero(t, second.LikeCount)
}

func TestToggleLike_UnknownComment(t *testing.T) {
	_, _, svc := commentFixtures()

	_, err := svc.ToggleLike(context.Background(), 1, 404)
	require.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestGetDiscussionComments_AnnotatesLikes(t *testing.T) {
	_, _, svc := commentFixtures()

	first, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "first",
	})
	require.NoError(t, err)
	_, err = svc.CreateComment(context.Background(), 3, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "second",
	})
	require.NoError(t, err)

	_, err = svc.ToggleLike(context.Background(), 3, first.ID)
	require.NoError(t, err)

	comments, err := svc.GetDiscussionComments(context.Background(), "alumni-stories", 3)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	require.Equal(t, int64(1), comments[0].LikeCount)
	require.True(t, comments[0].IsLikedByCurrentUser)
	require.Zero(t, comments[1].LikeCount)
	require.False(t, comments[1].IsLikedByCurrentUser)
}

func TestGetCommentThread_UnknownRoot(t *testing.T) {
	_, _, svc := commentFixtures()

	_, err := svc.GetCommentThread(context.Background(), 404, 0)
	require.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestGetCommentThread_IncludesReplies(t *testing.T) {
	_, _, svc := commentFixtures()

	root, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "root",
	})
	require.NoError(t, err)
	_, err = svc.CreateComment(context.Background(), 3, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		ParentID:     &root.ID,
		Text:         "reply",
	})
	require.NoError(t, err)

	thread, err := svc.GetCommentThread(context.Background(), root.ID, 0)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.Equal(t, root.ID, thread[0].ID)
}

func TestGetLikedComments_ListsUserLikes(t *testing.T) {
	_, _, svc := commentFixtures()

	comment, err := svc.CreateComment(context.Background(), 1, &dto.CreateCommentRequest{
		DiscussionID: "alumni-stories",
		Text:         "likeable",
	})
	require.NoError(t, err)

	_, err = svc.ToggleLike(context.Background(), 3, comment.ID)
	require.NoError(t, err)

	liked, err := svc.GetLikedComments(context.Background(), 3, "alumni-stories")
	require.NoError(t, err)
	require.Equal(t, []int64{comment.ID}, liked.CommentIDs)
}
