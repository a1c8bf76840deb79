package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPostgres opens gorm on a mocked Postgres connection
func newMockPostgres(t *testing.T, translate bool) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         translate,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestStatutoryComponentRepository_PostgresUniqueViolation(t *testing.T) {
	for _, translate := range []bool{true, false} {
		name := "raw pg error"
		if translate {
			name = "gorm translated"
		}
		t.Run(name, func(t *testing.T) {
			db, mock, mockDB := newMockPostgres(t, translate)
			defer mockDB.Close()
			repo := repository.NewStatutoryComponentRepository(db)

			mock.ExpectExec(`INSERT INTO "statutory_components"`).
				WillReturnError(&pgconn.PgError{
					Code:           "23505",
					Message:        "duplicate key value violates unique constraint",
					ConstraintName: "idx_statutory_component_country_code",
				})

			err := repo.Create(context.Background(), component(uuid.New(), "PF", 1, "2024-01-01", nil))

			assert.ErrorIs(t, err, repository.ErrDuplicateKey)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStatutoryComponentRepository_PostgresOtherErrorsPassThrough(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t, true)
	defer mockDB.Close()
	repo := repository.NewStatutoryComponentRepository(db)

	connErr := errors.New("connection reset by peer")
	mock.ExpectExec(`INSERT INTO "statutory_components"`).WillReturnError(connErr)

	err := repo.Create(context.Background(), component(uuid.New(), "PF", 1, "2024-01-01", nil))

	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, repository.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatutoryComponentRepository_PostgresListActiveOn(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t, true)
	defer mockDB.Close()
	repo := repository.NewStatutoryComponentRepository(db)

	countryID := uuid.New()
	on := date("2024-06-30")

	rows := sqlmock.NewRows([]string{"id", "country_id", "component_name", "component_code", "component_type", "contribution_type", "calculation_basis", "effective_from", "is_active"}).
		AddRow(uuid.New(), countryID, "Provident Fund", "PF", "PROVIDENT_FUND", "BOTH", "BASIC_SALARY", date("2024-01-01"), true)

	mock.ExpectQuery(`SELECT \* FROM "statutory_components" WHERE \(country_id = \$1 AND is_active = \$2\) AND \(effective_from <= \$3 AND \(effective_to IS NULL OR effective_to >= \$4\)\) ORDER BY display_order ASC, component_name ASC, id ASC`).
		WithArgs(countryID, true, on, on).
		WillReturnRows(rows)

	components, err := repo.ListActiveOn(context.Background(), countryID, on)

	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, model.ComponentTypeProvidentFund, components[0].ComponentType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
