package journal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one journal row: a single launch attempt of the backend server.
type Run struct {
	// ID is the UUID assigned to the launch attempt.
	ID string `gorm:"primaryKey;size:36"`
	// StartedAt is when the child process was spawned.
	StartedAt time.Time
	// FinishedAt is when the child process exited. Nil while running.
	FinishedAt *time.Time
	// Outcome is the terminal classification (completed, failed, interrupted).
	// Empty while running.
	Outcome string `gorm:"size:16"`
	// ExitCode is the child's exit status.
	ExitCode int
	// Interpreter is the interpreter path the child was spawned with.
	Interpreter string
	// Script is the server script the child ran.
	Script string
}

// TableName sets the journal table name.
func (Run) TableName() string {
	return "runs"
}

// Connect establishes a connection to the journal database.
// The journal is an optional facility, so callers should handle the error
// gracefully (warn and continue) rather than abort the launch.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	// Suppress GORM logging; the application logger owns all output.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Path)
	case "mysql":
		// Special characters in the password must be URL encoded for the DSN.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported journal driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// A launcher holds a single short-lived connection.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	return db, nil
}

// Journal records launch attempts.
type Journal struct {
	db *gorm.DB
}

// New creates a Journal over an established connection, migrating the runs
// table if needed.
func New(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Begin inserts the row for a freshly spawned run.
func (j *Journal) Begin(run Run) error {
	return j.db.Create(&run).Error
}

// Finish records the terminal outcome of a run.
func (j *Journal) Finish(id string, outcome string, exitCode int) error {
	now := time.Now()
	return j.db.Model(&Run{}).Where("id = ?", id).Updates(map[string]any{
		"finished_at": &now,
		"outcome":     outcome,
		"exit_code":   exitCode,
	}).Error
}

// Recent returns the most recent runs, newest first.
func (j *Journal) Recent(limit int) ([]Run, error) {
	var runs []Run
	err := j.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
