package storage

import "time"

// ProcessModel is the GORM model for the managed process set
type ProcessModel struct {
	Command   []string `gorm:"serializer:json;not null"`
	CreatedAt time.Time
	Dir       string    `gorm:"not null;default:''"`
	ID        string    `gorm:"primaryKey"`
	PGID      int       `gorm:"not null;default:0"`
	PID       int       `gorm:"not null;index:idx_pid"`
	StartedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProcessModel) TableName() string { return "processes" }

// ArtifactModel is the GORM model for artifact paths registered at runtime
type ArtifactModel struct {
	CreatedAt time.Time
	Path      string `gorm:"primaryKey"`
}

// TableName specifies the table name for GORM
func (ArtifactModel) TableName() string { return "artifacts" }
