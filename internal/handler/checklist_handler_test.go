package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"ticketboard/internal/handler"
	"ticketboard/internal/model"
	"ticketboard/internal/position"
	"ticketboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) Create(ctx context.Context, item *model.ChecklistItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockChecklistRepository) GetByID(ctx context.Context, workspaceID, id uint) (*model.ChecklistItem, error) {
	args := m.Called(ctx, workspaceID, id)
	i, _ := args.Get(0).(*model.ChecklistItem)
	return i, args.Error(1)
}

func (m *MockChecklistRepository) ListByTicket(ctx context.Context, ticketID uint) ([]model.ChecklistItem, error) {
	args := m.Called(ctx, ticketID)
	i, _ := args.Get(0).([]model.ChecklistItem)
	return i, args.Error(1)
}

func (m *MockChecklistRepository) GetMaxPosition(ctx context.Context, ticketID uint) (*int64, error) {
	args := m.Called(ctx, ticketID)
	p, _ := args.Get(0).(*int64)
	return p, args.Error(1)
}

func (m *MockChecklistRepository) Update(ctx context.Context, item *model.ChecklistItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockChecklistRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func setupChecklistRouter() (*gin.Engine, *MockChecklistRepository, *MockTicketFinder) {
	gin.SetMode(gin.TestMode)

	items := new(MockChecklistRepository)
	tickets := new(MockTicketFinder)
	h := handler.NewChecklistHandler(items, tickets, quietLogger())

	r := gin.New()
	ws := r.Group("/api/workspaces/:workspaceId", asMember(testScope))
	ws.GET("/tickets/:ticketId/checklist", h.GetAll)
	ws.POST("/tickets/:ticketId/checklist", h.Create)
	ws.PATCH("/checklist/:itemId", h.Update)
	ws.DELETE("/checklist/:itemId", h.Delete)
	return r, items, tickets
}

func TestCreateChecklistItem_Positions(t *testing.T) {
	last := int64(2048)
	cases := map[string]struct {
		last *int64
		want int64
	}{
		"empty checklist": {nil, 0},
		"appends":         {&last, 2048 + position.Gap},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			router, items, tickets := setupChecklistRouter()
			tickets.On("GetByID", mock.Anything, uint(3), uint(4)).Return(&model.Ticket{ID: 4, WorkspaceID: 3}, nil)
			items.On("GetMaxPosition", mock.Anything, uint(4)).Return(tc.last, nil)
			items.On("Create", mock.Anything, mock.AnythingOfType("*model.ChecklistItem")).Return(nil)

			resp := doJSON(router, "POST", "/api/workspaces/3/tickets/4/checklist", map[string]any{"title": "Write tests"})

			require.Equal(t, http.StatusCreated, resp.Code)
			var item model.ChecklistItem
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &item))
			assert.Equal(t, tc.want, item.Position)
			assert.Equal(t, uint(4), item.TicketID)
			assert.False(t, item.Done)
		})
	}
}

func TestCreateChecklistItem_TicketNotFound(t *testing.T) {
	router, items, tickets := setupChecklistRouter()
	tickets.On("GetByID", mock.Anything, uint(3), uint(4)).Return(nil, repository.ErrTicketNotFound)

	resp := doJSON(router, "POST", "/api/workspaces/3/tickets/4/checklist", map[string]any{"title": "x"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateChecklistItem_PartialUpdate(t *testing.T) {
	router, items, _ := setupChecklistRouter()
	items.On("GetByID", mock.Anything, uint(3), uint(9)).
		Return(&model.ChecklistItem{ID: 9, TicketID: 4, Title: "Keep me", Position: 1024}, nil)
	items.On("Update", mock.Anything, mock.MatchedBy(func(i *model.ChecklistItem) bool {
		return i.ID == 9 && i.Done && i.Title == "Keep me" && i.Position == 1024
	})).Return(nil)

	resp := doJSON(router, "PATCH", "/api/workspaces/3/checklist/9", map[string]any{"done": true})

	assert.Equal(t, http.StatusOK, resp.Code)
	items.AssertExpectations(t)
}

func TestDeleteChecklistItem(t *testing.T) {
	router, items, _ := setupChecklistRouter()
	items.On("GetByID", mock.Anything, uint(3), uint(9)).Return(&model.ChecklistItem{ID: 9}, nil)
	items.On("Delete", mock.Anything, uint(9)).Return(nil)
	items.On("GetByID", mock.Anything, uint(3), uint(10)).Return(nil, repository.ErrChecklistNotFound)

	assert.Equal(t, http.StatusNoContent, doJSON(router, "DELETE", "/api/workspaces/3/checklist/9", nil).Code)

	resp := doJSON(router, "DELETE", "/api/workspaces/3/checklist/10", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	items.AssertNotCalled(t, "Delete", mock.Anything, uint(10))
}
