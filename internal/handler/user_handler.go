package handler

import (
	"net/http"
	"strings"

	"ticketboard/internal/apperror"
	"ticketboard/internal/auth"
	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	repo   repository.UserRepositoryInterface
	tokens *auth.TokenIssuer
	logger *log.Logger
}

func NewUserHandler(repo repository.UserRepositoryInterface, tokens *auth.TokenIssuer, logger *log.Logger) *UserHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &UserHandler{repo: repo, tokens: tokens, logger: logger}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates an account and signs the user in
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if existing != nil {
		respondError(c, http.StatusConflict, apperror.CodeConflict, "User with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	user := &model.User{
		Email:          req.Email,
		Name:           strings.TrimSpace(req.Name),
		HashedPassword: string(hash),
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login exchanges email and password for a token
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Me returns the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, apperror.CodeNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(status, AuthResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}
