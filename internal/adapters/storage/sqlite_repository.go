package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/vanshika-srivastava/coretest/internal/domain"
	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

// SQLiteRepository implements ports.Registry using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.Registry = (*SQLiteRepository)(nil)

// gormLogger wraps the harness logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("CORETEST_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the registry database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A CLI invocation and a test binary may share the file
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&ProcessModel{}, &ArtifactModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate registry schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AddProcess implements ProcessWriter.AddProcess
func (r *SQLiteRepository) AddProcess(ctx context.Context, record domain.ProcessRecord) error {
	model := ProcessModel{
		Command:   record.Command,
		Dir:       record.Dir,
		ID:        string(record.ID),
		PGID:      record.PGID,
		PID:       record.PID,
		StartedAt: record.StartedAt,
	}
	return withRetry(func() error {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to record process %s: %w", record.ID, err)
		}
		return nil
	}, 3)
}

// RemoveProcess implements ProcessWriter.RemoveProcess
func (r *SQLiteRepository) RemoveProcess(ctx context.Context, id domain.ProcessID) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("id = ?", string(id)).Delete(&ProcessModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("process %s: %w", id, domain.ErrProcessNotFound)
		}
		return nil
	}, 3)
}

// ListProcesses implements ProcessReader.ListProcesses, oldest first
func (r *SQLiteRepository) ListProcesses(ctx context.Context) ([]domain.ProcessRecord, error) {
	var models []ProcessModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("started_at ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	records := make([]domain.ProcessRecord, 0, len(models))
	for _, m := range models {
		records = append(records, domain.ProcessRecord{
			Command:   m.Command,
			Dir:       m.Dir,
			ID:        domain.ProcessID(m.ID),
			PGID:      m.PGID,
			PID:       m.PID,
			StartedAt: m.StartedAt,
		})
	}
	return records, nil
}

// AddArtifact implements ArtifactStore.AddArtifact; adding a known path is a no-op
func (r *SQLiteRepository) AddArtifact(ctx context.Context, path string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ArtifactModel{Path: path}).Error
	}, 3)
}

// RemoveArtifact implements ArtifactStore.RemoveArtifact; removing an unknown path is a no-op
func (r *SQLiteRepository) RemoveArtifact(ctx context.Context, path string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Where("path = ?", path).Delete(&ArtifactModel{}).Error
	}, 3)
}

// ListArtifacts implements ArtifactStore.ListArtifacts
func (r *SQLiteRepository) ListArtifacts(ctx context.Context) ([]domain.Artifact, error) {
	var models []ArtifactModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("path ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	artifacts := make([]domain.Artifact, 0, len(models))
	for _, m := range models {
		artifacts = append(artifacts, domain.Artifact{CreatedAt: m.CreatedAt, Path: m.Path})
	}
	return artifacts, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
