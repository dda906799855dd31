package handler_test

import (
	"context"
	"net/http"
	"testing"

	"ticketboard/internal/handler"
	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок репозитория меток
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) Create(ctx context.Context, label *model.Label) error {
	return m.Called(ctx, label).Error(0)
}

func (m *MockLabelRepository) GetByWorkspaceID(ctx context.Context, workspaceID uint) ([]model.Label, error) {
	args := m.Called(ctx, workspaceID)
	l, _ := args.Get(0).([]model.Label)
	return l, args.Error(1)
}

func (m *MockLabelRepository) Update(ctx context.Context, label *model.Label) error {
	return m.Called(ctx, label).Error(0)
}

func (m *MockLabelRepository) Delete(ctx context.Context, workspaceID, id uint) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockBoards struct {
	mock.Mock
}

func (m *MockBoards) Invalidate(ctx context.Context, workspaceID uint) {
	m.Called(ctx, workspaceID)
}

func setupLabelRouter() (*gin.Engine, *MockLabelRepository, *MockBoards) {
	gin.SetMode(gin.TestMode)

	labels := new(MockLabelRepository)
	boards := new(MockBoards)
	h := handler.NewLabelHandler(labels, boards, quietLogger())

	r := gin.New()
	ws := r.Group("/api/workspaces/:workspaceId", asMember(testScope))
	ws.GET("/labels", h.GetAll)
	ws.POST("/labels", h.Create)
	ws.PUT("/labels/:labelId", h.Update)
	ws.DELETE("/labels/:labelId", h.Delete)
	return r, labels, boards
}

func TestCreateLabel(t *testing.T) {
	router, labels, _ := setupLabelRouter()
	labels.On("Create", mock.Anything, &model.Label{WorkspaceID: 3, Name: "bug", Color: "#ff0000"}).Return(nil)

	resp := doJSON(router, "POST", "/api/workspaces/3/labels", map[string]any{"name": "bug", "color": "#ff0000"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	labels.AssertExpectations(t)
}

func TestCreateLabel_InvalidColor(t *testing.T) {
	router, labels, _ := setupLabelRouter()

	resp := doJSON(router, "POST", "/api/workspaces/3/labels", map[string]any{"name": "bug", "color": "red"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	labels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateLabel_EvictsBoard(t *testing.T) {
	router, labels, boards := setupLabelRouter()
	labels.On("Update", mock.Anything, &model.Label{ID: 7, WorkspaceID: 3, Name: "defect", Color: "#00ff00"}).Return(nil)
	boards.On("Invalidate", mock.Anything, uint(3)).Return()

	resp := doJSON(router, "PUT", "/api/workspaces/3/labels/7", map[string]any{"name": "defect", "color": "#00ff00"})

	assert.Equal(t, http.StatusOK, resp.Code)
	boards.AssertExpectations(t)
}

func TestDeleteLabel_NotFoundKeepsBoard(t *testing.T) {
	router, labels, boards := setupLabelRouter()
	labels.On("Delete", mock.Anything, uint(3), uint(7)).Return(repository.ErrLabelNotFound)

	resp := doJSON(router, "DELETE", "/api/workspaces/3/labels/7", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Label not found", errorBody(t, resp).Message)
	boards.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestDeleteLabel(t *testing.T) {
	router, labels, boards := setupLabelRouter()
	labels.On("Delete", mock.Anything, uint(3), uint(7)).Return(nil)
	boards.On("Invalidate", mock.Anything, uint(3)).Return()

	assert.Equal(t, http.StatusNoContent, doJSON(router, "DELETE", "/api/workspaces/3/labels/7", nil).Code)
	boards.AssertExpectations(t)
}
