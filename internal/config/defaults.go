// Package config provides centralized configuration for DayWing.
// All default values are defined here.
package config

import (
	"github.com/josephgoksu/DayWing/internal/logbook"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the config file base name (.daywing.yaml).
	ConfigName = ".daywing"
	// EnvPrefix prefixes environment overrides, e.g. DAYWING_DATA_DIR.
	EnvPrefix = "DAYWING"
	// LocalDir is the per-project data directory.
	LocalDir = ".daywing"
)

// DefaultExportFormat is used when neither flag nor config picks one.
const DefaultExportFormat = "json"

// DefaultLockFile is created inside the data directory to serialise housekeeping.
const DefaultLockFile = "housekeeping.lock"

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logbook.archiveAfterDays", logbook.DefaultArchiveAfterDays)
	v.SetDefault("logbook.retainDays", logbook.DefaultRetainDays)
	v.SetDefault("logbook.lockFile", "")
	v.SetDefault("export.format", DefaultExportFormat)
	v.SetDefault("verbose", false)
}
