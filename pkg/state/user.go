package state

import (
	"context"
)

const (
	CurrentUserId   = "CurrentUserId"
	CurrentUserRole = "CurrentUserRole"
	CurrentUserIP   = "CurrentIP"
	RequestID       = "RequestID"
)

// CurrentUser returns the current user's ID as uint from the context.
func CurrentUser(ctx context.Context) uint {
	value := ctx.Value(CurrentUserId)
	if value == nil {
		return 0
	}

	userID, ok := value.(uint)
	if !ok {
		return 0
	}

	return userID
}

// CurrentRole returns the role claimed by the caller's token, or "".
func CurrentRole(ctx context.Context) string {
	role, _ := ctx.Value(CurrentUserRole).(string)
	return role
}
