package repository_test

import (
	"context"
	"testing"

	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceRepository_CreateWithOwner(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWorkspaceRepository(gormDB)
	workspace := &model.Workspace{Name: "Platform", OwnerID: 2}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "workspaces"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectCommit()

	// Act
	owner, err := repo.CreateWithOwner(context.Background(), workspace)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(12), workspace.ID)
	assert.NotEqual(t, uuid.Nil, workspace.InviteCode)
	assert.Equal(t, uint(30), owner.ID)
	assert.Equal(t, uint(12), owner.WorkspaceID)
	assert.Equal(t, uint(2), owner.UserID)
	assert.Equal(t, model.RoleOwner, owner.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_CreateWithOwner_RollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWorkspaceRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "workspaces"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "members"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	owner, err := repo.CreateWithOwner(context.Background(), &model.Workspace{Name: "Platform", OwnerID: 2})

	assert.Error(t, err)
	assert.Nil(t, owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_CountOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWorkspaceRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "workspaces" WHERE owner_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountOwned(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_GetByInviteCode_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWorkspaceRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "workspaces" WHERE invite_code = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "invite_code", "owner_id"}))

	workspace, err := repo.GetByInviteCode(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrWorkspaceNotFound)
	assert.Nil(t, workspace)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_ListForUser(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWorkspaceRepository(gormDB)
	code := uuid.New()

	mock.ExpectQuery(`SELECT "workspaces"\..* FROM "workspaces" JOIN members ON members.workspace_id = workspaces.id WHERE members.user_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "invite_code", "owner_id"}).
			AddRow(1, "Alpha", code.String(), 5).
			AddRow(4, "Beta", uuid.New().String(), 9))

	workspaces, err := repo.ListForUser(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "Alpha", workspaces[0].Name)
	assert.Equal(t, code, workspaces[0].InviteCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
