package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shecodes/community-api/internal/app/models"
)

func skillID(s models.Skill) *int64 {
	if s.ID == 0 {
		return nil
	}
	id := s.ID
	return &id
}

func TestPlanChildSync_NewRowsAreCreated(t *testing.T) {
	incoming := []models.Skill{
		{Title: "Git basics"},
		{Title: "Code review"},
	}

	plan := planChildSync(nil, incoming, skillID)

	require.Len(t, plan.Creates, 2)
	require.Empty(t, plan.Updates)
	require.Empty(t, plan.DeleteIDs)
	require.Empty(t, plan.DroppedIDs)
}

func TestPlanChildSync_KnownIDsAreUpdated(t *testing.T) {
	incoming := []models.Skill{
		{ID: 1, Title: "Git basics, renamed"},
		{ID: 2, Title: "Code review"},
	}

	plan := planChildSync([]int64{1, 2}, incoming, skillID)

	require.Empty(t, plan.Creates)
	require.Len(t, plan.Updates, 2)
	require.Empty(t, plan.DeleteIDs)
	require.Empty(t, plan.DroppedIDs)
}

func TestPlanChildSync_MissingRowsAreDeleted(t *testing.T) {
	incoming := []models.Skill{
		{ID: 1, Title: "Git basics"},
	}

	plan := planChildSync([]int64{1, 2, 3}, incoming, skillID)

	require.Len(t, plan.Updates, 1)
	require.ElementsMatch(t, []int64{2, 3}, plan.DeleteIDs)
}

func TestPlanChildSync_UnknownIDsAreDropped(t *testing.T) {
	incoming := []models.Skill{
		{ID: 99, Title: "Not ours"},
		{Title: "New one"},
	}

	plan := planChildSync([]int64{1}, incoming, skillID)

	require.Len(t, plan.Creates, 1)
	require.Equal(t, "New one", plan.Creates[0].Title)
	require.Empty(t, plan.Updates)
	require.Equal(t, []int64{99}, plan.DroppedIDs)
	// The unknown id must not shadow the stored row's deletion
	require.Equal(t, []int64{1}, plan.DeleteIDs)
}

func TestPlanChildSync_EmptyIncomingDeletesEverything(t *testing.T) {
	plan := planChildSync([]int64{4, 5}, nil, skillID)

	require.Empty(t, plan.Creates)
	require.Empty(t, plan.Updates)
	require.ElementsMatch(t, []int64{4, 5}, plan.DeleteIDs)
}

func TestPlanChildSync_MixedPlan(t *testing.T) {
	incoming := []models.Skill{
		{Title: "brand new"},
		{ID: 2, Title: "kept"},
		{ID: 42, Title: "foreign"},
	}

	plan := planChildSync([]int64{1, 2}, incoming, skillID)

	require.Len(t, plan.Creates, 1)
	require.Len(t, plan.Updates, 1)
	require.Equal(t, int64(2), plan.Updates[0].ID)
	require.Equal(t, []int64{42}, plan.DroppedIDs)
	require.Equal(t, []int64{1}, plan.DeleteIDs)
}
