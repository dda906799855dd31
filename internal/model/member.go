package model

import (
	"time"
)

// Member links a user to a workspace with a role.
type Member struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;uniqueIndex:idx_members_workspace_user" json:"workspace_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_members_workspace_user" json:"user_id"`
	Role        Role      `gorm:"not null;check:role IN ('owner', 'editor', 'viewer')" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
}

type Role string

const (
	RoleOwner  Role = "owner"  // manages members and notification settings
	RoleEditor Role = "editor" // creates and moves tickets
	RoleViewer Role = "viewer" // read only
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Allows reports whether r grants at least the privileges of required.
func (r Role) Allows(required Role) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}
