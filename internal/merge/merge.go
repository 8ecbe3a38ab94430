// Package merge plans how an externally supplied record set reconciles
// against the local store: per record, the newest modified timestamp wins.
package merge

import (
	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// Action is the planned outcome for one incoming record.
type Action int

const (
	// Insert means the record is new to the local store.
	Insert Action = iota
	// Update means the incoming record is strictly newer than the local one.
	Update
	// Ignore means the local record is newer or equally old; local wins ties.
	Ignore
)

func (a Action) String() string {
	switch a {
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Ignore:
		return "ignore"
	}

	return "unknown"
}

// PlanActions maps every incoming record's identity to the action applying
// it requires. The function is pure: unchanged inputs always produce an
// identical plan.
func PlanActions[T model.Record](existing, incoming []T) map[uuid.UUID]Action {
	local := make(map[uuid.UUID]int64, len(existing))
	for _, r := range existing {
		local[r.RecordID()] = r.LastModified()
	}

	plan := make(map[uuid.UUID]Action, len(incoming))

	for _, r := range incoming {
		modified, ok := local[r.RecordID()]
		switch {
		case !ok:
			plan[r.RecordID()] = Insert
		case r.LastModified() > modified:
			plan[r.RecordID()] = Update
		default:
			plan[r.RecordID()] = Ignore
		}
	}

	return plan
}

// Select splits incoming records by their planned action, preserving input
// order, for dependency-ordered application.
func Select[T model.Record](incoming []T, plan map[uuid.UUID]Action) (inserts, updates []T) {
	for _, r := range incoming {
		switch plan[r.RecordID()] {
		case Insert:
			inserts = append(inserts, r)
		case Update:
			updates = append(updates, r)
		}
	}

	return inserts, updates
}
