package repository_test

import (
	"context"
	"testing"

	"ticketboard/internal/model"
	"ticketboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberColumns = []string{"id", "workspace_id", "user_id", "role"}

func TestMemberRepository_Find_NotMember(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "members" WHERE workspace_id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(memberColumns))

	member, err := repo.Find(context.Background(), 1, 5)

	assert.NoError(t, err) // not being a member is not an error
	assert.Nil(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_Join_New(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE workspace_id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(memberColumns))
	mock.ExpectQuery(`INSERT INTO "members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))
	mock.ExpectCommit()

	member, err := repo.Join(context.Background(), 3, 9, model.RoleEditor)

	require.NoError(t, err)
	assert.Equal(t, uint(40), member.ID)
	assert.Equal(t, model.RoleEditor, member.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_Join_ExistingKeepsRole(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE workspace_id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(1, 3, 9, "owner"))
	mock.ExpectCommit()

	member, err := repo.Join(context.Background(), 3, 9, model.RoleEditor)

	require.NoError(t, err)
	assert.Equal(t, uint(1), member.ID)
	assert.Equal(t, model.RoleOwner, member.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_UpdateRole_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "members" SET "role"=\$1 WHERE id = \$2 AND workspace_id = \$3`).
		WithArgs(model.RoleViewer, 70, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateRole(context.Background(), 3, 70, model.RoleViewer)

	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_Remove(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "members" WHERE id = \$1 AND workspace_id = \$2`).
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Remove(context.Background(), 3, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_CheckAccess(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "members"`).
		WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(8, 1, 5, "viewer"))
	mock.ExpectQuery(`SELECT \* FROM "members"`).
		WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(8, 1, 5, "viewer"))

	canRead, err := repo.CheckAccess(context.Background(), 1, 5, model.RoleViewer)
	require.NoError(t, err)
	canWrite, err := repo.CheckAccess(context.Background(), 1, 5, model.RoleEditor)
	require.NoError(t, err)

	assert.True(t, canRead)
	assert.False(t, canWrite)
	assert.NoError(t, mock.ExpectationsWereMet())
}
