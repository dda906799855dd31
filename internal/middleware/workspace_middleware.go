package middleware

import (
	"context"
	"net/http"
	"strconv"

	"ticketboard/internal/apperror"
	"ticketboard/internal/model"
	"ticketboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const ScopeKey = "scope"

type memberFinder interface {
	Find(ctx context.Context, workspaceID, userID uint) (*model.Member, error)
}

// WorkspaceMember resolves the :workspaceId path parameter against the caller's memberships and stores
// a service.Scope under ScopeKey. Non-members get 404 so workspace ids cannot be probed.
func WorkspaceMember(members memberFinder, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Not authenticated")
			return
		}

		workspaceID, err := strconv.ParseUint(c.Param("workspaceId"), 10, 64)
		if err != nil || workspaceID == 0 {
			apperror.Abort(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid workspace ID")
			return
		}

		member, err := members.Find(c.Request.Context(), uint(workspaceID), userID)
		if err != nil {
			logger.WithError(err).WithField("workspace_id", workspaceID).Error("membership lookup failed")
			apperror.Abort(c, http.StatusInternalServerError, apperror.CodeInternal, "Failed to check workspace access")
			return
		}
		if member == nil {
			apperror.Abort(c, http.StatusNotFound, apperror.CodeWorkspaceNotFound, "Workspace not found")
			return
		}

		c.Set(ScopeKey, service.Scope{
			WorkspaceID: member.WorkspaceID,
			MemberID:    member.ID,
			UserID:      userID,
			Role:        member.Role,
		})
		c.Next()
	}
}

// RequireRole rejects callers whose workspace role is below required. It runs after WorkspaceMember.
func RequireRole(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := ScopeFrom(c)
		if !ok {
			apperror.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Not authenticated")
			return
		}
		if !scope.Role.Allows(required) {
			apperror.Abort(c, http.StatusForbidden, apperror.CodeForbidden, "Insufficient workspace role")
			return
		}
		c.Next()
	}
}

func ScopeFrom(c *gin.Context) (service.Scope, bool) {
	v, exists := c.Get(ScopeKey)
	if !exists {
		return service.Scope{}, false
	}
	scope, ok := v.(service.Scope)
	return scope, ok
}
