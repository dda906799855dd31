package handler

import (
	"net/http"
	"strings"

	"ticketboard/internal/apperror"
	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const MaxWorkspacesPerUser = 5

type WorkspaceHandler struct {
	workspaces repository.WorkspaceRepositoryInterface
	members    repository.MemberRepositoryInterface
	logger     *log.Logger
}

func NewWorkspaceHandler(workspaces repository.WorkspaceRepositoryInterface, members repository.MemberRepositoryInterface, logger *log.Logger) *WorkspaceHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &WorkspaceHandler{workspaces: workspaces, members: members, logger: logger}
}

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type JoinWorkspaceRequest struct {
	InviteCode string `json:"invite_code" binding:"required,uuid"`
}

type UpdateMemberRequest struct {
	Role model.Role `json:"role" binding:"required,workspace_role"`
}

type WorkspaceResponse struct {
	Workspace *model.Workspace `json:"workspace"`
	Role      model.Role       `json:"role"`
}

// Create creates a workspace owned by the authenticated user
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Name is required")
		return
	}

	// Check if user already owns the maximum number of workspaces
	count, err := h.workspaces.CountOwned(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if count >= MaxWorkspacesPerUser {
		respondError(c, http.StatusForbidden, apperror.CodeForbidden, "Maximum number of workspaces reached (5)")
		return
	}

	workspace := &model.Workspace{Name: name, OwnerID: userID}
	owner, err := h.workspaces.CreateWithOwner(c.Request.Context(), workspace)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	h.logger.WithFields(log.Fields{"workspace_id": workspace.ID, "user_id": userID}).Info("workspace created")
	c.JSON(http.StatusCreated, WorkspaceResponse{Workspace: workspace, Role: owner.Role})
}

// GetAll lists the workspaces the user belongs to
func (h *WorkspaceHandler) GetAll(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaces.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

// Join adds the user to the workspace behind an invite code as an editor
func (h *WorkspaceHandler) Join(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	var req JoinWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	code, err := uuid.Parse(req.InviteCode)
	if err != nil {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid invite code")
		return
	}

	workspace, err := h.workspaces.GetByInviteCode(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	member, err := h.members.Join(c.Request.Context(), workspace.ID, userID, model.RoleEditor)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, WorkspaceResponse{Workspace: workspace, Role: member.Role})
}

// GetByID returns the workspace of the current scope
func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	workspace, err := h.workspaces.GetByID(c.Request.Context(), scope.WorkspaceID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if scope.Role != model.RoleOwner {
		workspace.InviteCode = uuid.Nil
	}
	c.JSON(http.StatusOK, WorkspaceResponse{Workspace: workspace, Role: scope.Role})
}

// Members lists the workspace members
func (h *WorkspaceHandler) Members(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}

	members, err := h.members.ListByWorkspace(c.Request.Context(), scope.WorkspaceID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// UpdateMember changes a member's role. Ownership cannot be granted or taken here.
func (h *WorkspaceHandler) UpdateMember(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if req.Role == model.RoleOwner {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Ownership cannot be transferred")
		return
	}

	member, err := h.members.GetByID(c.Request.Context(), scope.WorkspaceID, memberID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if member.Role == model.RoleOwner {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "The owner's role cannot be changed")
		return
	}

	if err := h.members.UpdateRole(c.Request.Context(), scope.WorkspaceID, memberID, req.Role); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	member.Role = req.Role
	c.JSON(http.StatusOK, gin.H{"member": member})
}

// RemoveMember removes a member from the workspace
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	scope, ok := mustScope(c)
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	member, err := h.members.GetByID(c.Request.Context(), scope.WorkspaceID, memberID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if member.Role == model.RoleOwner {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "The owner cannot be removed")
		return
	}

	if err := h.members.Remove(c.Request.Context(), scope.WorkspaceID, memberID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
