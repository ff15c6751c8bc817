package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
)

func setupUnitTypeRepo(t *testing.T) (*UnitTypeRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUnitTypeRepository(db)
	return repo, mock, db
}

func unitTypeColumns() []string {
	return []string{"id", "project_id", "name", "slug", "area", "area_unit", "bedrooms", "bathrooms", "description"}
}

func TestUnitTypeRepository_Create(t *testing.T) {
	repo, mock, db := setupUnitTypeRepo(t)
	defer db.Close()

	t.Run("creates with generated slug", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO unit_types`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"proj-1",
				"Tipo Ático",
				"tipo-atico",
				120.5,
				"m2",
				3,
				2,
				"Penthouse",
			).
			WillReturnRows(sqlmock.NewRows(unitTypeColumns()).
				AddRow("ut-1", "proj-1", "Tipo Ático", "tipo-atico", 120.5, "m2", 3, 2, "Penthouse"))

		out, err := repo.Create(context.Background(), "proj-1", &domain.UnitType{
			Name: "Tipo Ático", Area: 120.5, AreaUnit: "m2", Bedrooms: 3, Bathrooms: 2, Description: "Penthouse",
		})
		require.NoError(t, err)
		assert.Equal(t, "ut-1", out.ID)
		assert.Equal(t, "tipo-atico", out.Slug)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := repo.Create(context.Background(), "proj-1", &domain.UnitType{})
		assert.Error(t, err)
	})

	t.Run("duplicate slug surfaces friendly error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO unit_types`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), "proj-1", &domain.UnitType{Name: "Tipo A"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnitTypeRepository_List(t *testing.T) {
	repo, mock, db := setupUnitTypeRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM unit_types`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows(unitTypeColumns()).
			AddRow("ut-1", "proj-1", "Tipo A", "tipo-a", 85.0, "m2", 2, 1, "").
			AddRow("ut-2", "proj-1", "Tipo B", "tipo-b", 120.0, "m2", 3, 2, ""))

	out, err := repo.List(context.Background(), "proj-1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Tipo A", out[0].Name)
	assert.Equal(t, 120.0, out[1].Area)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitTypeRepository_Update(t *testing.T) {
	repo, mock, db := setupUnitTypeRepo(t)
	defer db.Close()

	t.Run("updates editable fields", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE unit_types`).
			WithArgs("ut-1", "Tipo A+", 90.0, "m2", 2, 2, "Refresh").
			WillReturnRows(sqlmock.NewRows(unitTypeColumns()).
				AddRow("ut-1", "proj-1", "Tipo A+", "tipo-a", 90.0, "m2", 2, 2, "Refresh"))

		out, err := repo.Update(context.Background(), "ut-1", &domain.UnitType{
			Name: "Tipo A+", Area: 90.0, AreaUnit: "m2", Bedrooms: 2, Bathrooms: 2, Description: "Refresh",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tipo A+", out.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE unit_types`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), "nope", &domain.UnitType{Name: "X"})
		assert.ErrorIs(t, err, domain.ErrUnitTypeNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnitTypeRepository_Delete(t *testing.T) {
	repo, mock, db := setupUnitTypeRepo(t)
	defer db.Close()

	t.Run("deletes existing row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM unit_types`).
			WithArgs("ut-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Delete(context.Background(), "ut-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reports missing row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM unit_types`).
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Delete(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
