package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ticketboard/internal/apperror"
	"ticketboard/internal/middleware"
	"ticketboard/internal/repository"
	"ticketboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func respondError(c *gin.Context, status int, code, message string) {
	apperror.Respond(c, status, code, message)
}

// respondServiceError maps domain errors to the API envelope. Anything unrecognised is logged and
// reported as INTERNAL_ERROR without leaking its text.
func respondServiceError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, err.Error())
	case errors.Is(err, service.ErrParentNotFound):
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Parent ticket not found")
	case errors.Is(err, repository.ErrTicketNotFound):
		respondError(c, http.StatusNotFound, apperror.CodeTicketNotFound, "Ticket not found")
	case errors.Is(err, repository.ErrWorkspaceNotFound):
		respondError(c, http.StatusNotFound, apperror.CodeWorkspaceNotFound, "Workspace not found")
	case errors.Is(err, repository.ErrMemberNotFound):
		respondError(c, http.StatusNotFound, apperror.CodeNotFound, "Member not found")
	case errors.Is(err, repository.ErrLabelNotFound):
		respondError(c, http.StatusNotFound, apperror.CodeNotFound, "Label not found")
	case errors.Is(err, repository.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, apperror.CodeNotFound, "Comment not found")
	case errors.Is(err, repository.ErrChecklistNotFound):
		respondError(c, http.StatusNotFound, apperror.CodeNotFound, "Checklist item not found")
	default:
		logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Error("request failed")
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, apperror.CodeInternal, "Internal server error")
	}
}

func invalidRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid request: "+err.Error())
}

// pathID parses a positive integer path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// mustScope returns the workspace scope set by the membership middleware.
func mustScope(c *gin.Context) (service.Scope, bool) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Not authenticated")
	}
	return scope, ok
}

func mustUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Not authenticated")
	}
	return userID, ok
}
