package repository

import "errors"

// Common repository errors
var (
	// ErrWorkspaceNotFound is returned when a workspace is not found
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrMemberNotFound is returned when a membership is not found
	ErrMemberNotFound = errors.New("member not found")

	// ErrTicketNotFound is returned when a ticket is not found in the caller's workspace
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrLabelNotFound is returned when a label is not found
	ErrLabelNotFound = errors.New("label not found")

	ErrCommentNotFound   = errors.New("comment not found")
	ErrChecklistNotFound = errors.New("checklist item not found")
)
