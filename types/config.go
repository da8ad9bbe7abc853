/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Logbook LogbookConfig `mapstructure:"logbook" validate:"required"`
	Export  ExportConfig  `mapstructure:"export"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// Dir is the directory holding daywing.db
	Dir string `mapstructure:"dir" validate:"required"`
}

// LogbookConfig holds retention thresholds in whole days
type LogbookConfig struct {
	ArchiveAfterDays int    `mapstructure:"archiveAfterDays" validate:"required,min=1"`
	RetainDays       int    `mapstructure:"retainDays" validate:"required,gtefield=ArchiveAfterDays"`
	LockFile         string `mapstructure:"lockFile"`
}

// ExportConfig holds logbook export defaults
type ExportConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml toml"`
}
