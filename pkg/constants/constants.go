// Package constants provides shared constants used throughout the foiafix codebase.
// This includes file permissions, document limits, placeholder values and the
// default directory layout for a batch run.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Document limits
const (
	// MaxTextLength is the schema bound on free-text denial reason descriptions
	MaxTextLength = 255

	// RemovedValue replaces text that exceeded MaxTextLength
	RemovedValue = "this-value-was-removed"
)

// Placeholder values written into sections a component has no data for
const (
	// PlaceholderText is used for text and date fields
	PlaceholderText = "N/A"

	// PlaceholderQuantity is used for numeric fields
	PlaceholderQuantity = "0"
)

// Document identifiers
const (
	// AgencyOrgID is the s:id of the agency itself within a report
	AgencyOrgID = "ORG0"

	// ReportFileExt is the extension of report files in a year directory
	ReportFileExt = ".xml"
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for memoized resolutions
	CacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// Default directory layout, relative to the working directory
const (
	// DefaultRegistryDir holds the agency and component reference files
	DefaultRegistryDir = "helpers/data"

	// DefaultInputDir holds one subdirectory of raw reports per year
	DefaultInputDir = "input"

	// DefaultOutputDir receives canonical repaired reports
	DefaultOutputDir = "output"

	// DefaultFormattedDir receives indented repaired reports
	DefaultFormattedDir = "formatted"

	// DefaultConfigFile is the config file looked up in the working and home directories
	DefaultConfigFile = ".foiafix"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
