package service

import "errors"

// ErrAccessDenied is returned when the acting user does not own the resource.
var ErrAccessDenied = errors.New("access denied")

// Authorize allows a mutation only when the acting user owns the resource.
func Authorize(ownerID, currentUserID int64) error {
	if ownerID != currentUserID {
		return ErrAccessDenied
	}
	return nil
}
