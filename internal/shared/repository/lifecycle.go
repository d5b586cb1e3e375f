package repository

import (
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
)

// Status sets used by descriptors.
var (
	// BasicStatuses is for entities that are only switched on and off.
	BasicStatuses = []model.Status{model.StatusActive, model.StatusInactive}
	// AccountStatuses adds the approval and suspension states.
	AccountStatuses = []model.Status{model.StatusActive, model.StatusInactive, model.StatusPending, model.StatusSuspended}
	// LongLivedStatuses adds the terminal completed and cancelled states.
	LongLivedStatuses = []model.Status{
		model.StatusActive, model.StatusInactive, model.StatusPending,
		model.StatusSuspended, model.StatusCompleted, model.StatusCancelled,
	}
)

// ResolveStatus decides which status an update writes.
// A nil or unchanged request yields StatusUnset so Update leaves the stored column alone.
// Leaving inactive through an update is refused; reactivation is its own operation.
func ResolveStatus(entity, id string, current model.Status, requested *string) (model.Status, error) {
	if requested == nil {
		return model.StatusUnset, nil
	}

	target, err := model.ParseStatus(*requested)
	if err != nil {
		return model.StatusUnset, &sharedError.StateError{Entity: entity, ID: id, Current: current.String(), Target: *requested}
	}
	if target == current {
		return model.StatusUnset, nil
	}
	if current == model.StatusInactive {
		return model.StatusUnset, &sharedError.StateError{Entity: entity, ID: id, Current: current.String(), Target: target.String()}
	}
	return target, nil
}
