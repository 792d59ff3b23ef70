package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// syncPlan is the outcome of reconciling an incoming child collection
// against the rows currently stored for a parent.
type syncPlan[T any] struct {
	Creates    []T     // incoming rows without an id
	Updates    []T     // incoming rows whose id matches a stored row
	DeleteIDs  []int64 // stored rows absent from the incoming collection
	DroppedIDs []int64 // incoming ids that match no stored row
}

// planChildSync computes the reconcile plan for one owned child collection.
// A row with a nil id is created, a row whose id matches a stored row is
// updated, and a row with an unknown id is dropped from the plan. Stored
// rows missing from the incoming collection are scheduled for deletion.
func planChildSync[T any](existingIDs []int64, incoming []T, idOf func(T) *int64) syncPlan[T] {
	existing := make(map[int64]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	var plan syncPlan[T]
	seen := make(map[int64]bool, len(incoming))
	for _, row := range incoming {
		id := idOf(row)
		switch {
		case id == nil:
			plan.Creates = append(plan.Creates, row)
		case existing[*id]:
			plan.Updates = append(plan.Updates, row)
			seen[*id] = true
		default:
			plan.DroppedIDs = append(plan.DroppedIDs, *id)
		}
	}

	for _, id := range existingIDs {
		if !seen[id] {
			plan.DeleteIDs = append(plan.DeleteIDs, id)
		}
	}

	return plan
}

// childIDs lists the ids of an event's stored child rows within a transaction
func childIDs(ctx context.Context, tx pgx.Tx, table string, eventID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, "SELECT id FROM "+table+" WHERE event_id = $1", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// deleteChildren removes the given child rows of an event
func deleteChildren(ctx context.Context, tx pgx.Tx, table string, eventID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE event_id = $1 AND id = ANY($2)", eventID, ids)
	return err
}
