package service

import "ticketboard/internal/model"

// Scope identifies the caller inside one workspace. It is resolved by the membership
// middleware and passed explicitly to every workspace-bound operation.
type Scope struct {
	WorkspaceID uint
	MemberID    uint
	UserID      uint
	Role        model.Role
}
