package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestConnect(t *testing.T) {
	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "postgres"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "launcher",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestJournal_Lifecycle(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "journal.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)

	j, err := New(db)
	require.NoError(t, err)

	run := Run{
		ID:          "f6b7c9a0-0000-0000-0000-000000000001",
		StartedAt:   time.Now(),
		Interpreter: "/srv/backend/venv/bin/python",
		Script:      "/srv/backend/app/ml_server.py",
	}
	require.NoError(t, j.Begin(run))

	require.NoError(t, j.Finish(run.ID, "failed", 3))

	runs, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "failed", runs[0].Outcome)
	assert.Equal(t, 3, runs[0].ExitCode)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestJournal_Recent_Order(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "journal.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	j, err := New(db)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, j.Begin(Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	runs, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestJournal_SQL(t *testing.T) {
	t.Run("Begin", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		j := &Journal{db: gormDB}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `runs`").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := j.Begin(Run{ID: "run-1", StartedAt: time.Now()})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Finish", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		j := &Journal{db: gormDB}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `runs` SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := j.Finish("run-1", "completed", 0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
