// Package constants provides shared constants used throughout the polarmerge codebase.
// This includes canonical column names, block markers, file permissions, and other
// configuration values that should be consistent across the application.
package constants

// Acquisition mode identifiers. Electrospray ionisation runs each sample
// twice, once per polarity, and every input table belongs to exactly one.
const (
	// ModePositive identifies positive ionisation mode tables
	ModePositive = "pos"

	// ModeNegative identifies negative ionisation mode tables
	ModeNegative = "neg"
)

// Canonical column names shared by the identification tables and the merged
// outputs. These are the exact header spellings produced by the upstream
// vendor export.
const (
	// ColCompound is the compound identifier column that joins
	// identification rows to intensity rows
	ColCompound = "Compound"

	// ColScore is the identification confidence score column
	ColScore = "Score"

	// ColFragmentationScore is the fragmentation score column used to break
	// ties between equal identification scores
	ColFragmentationScore = "Fragmentation_Score"

	// ColDescription is the putative metabolite description column
	ColDescription = "Description"

	// ColPolarity is the provenance column added to merged tables before
	// cross-mode reconciliation
	ColPolarity = "Polarity"
)

// Sample map column names. Header matching is lenient (sanitized,
// case-insensitive) but these are the canonical spellings.
const (
	// ColOriginalPos is the sample map column holding positive mode sample names
	ColOriginalPos = "Original name (pos)"

	// ColOriginalNeg is the sample map column holding negative mode sample names
	ColOriginalNeg = "Original name (neg)"

	// ColUniqueName is the sample map column holding mode-independent sample names
	ColUniqueName = "Unique name"
)

// Intensity table block markers and output prefixes for the default vendor
// layout. The markers appear in the first row of the intensity table and
// delimit the raw and normalized abundance blocks.
const (
	// MarkerRaw delimits the start of the raw abundance block
	MarkerRaw = "Raw abundance"

	// MarkerNormalized delimits the start of the normalized abundance block
	MarkerNormalized = "Normalised abundance"

	// PrefixRaw is prepended to renamed sample columns taken from the raw
	// abundance block
	PrefixRaw = "Norm_"

	// PrefixNormalized is prepended to renamed sample columns taken from
	// the normalized abundance block
	PrefixNormalized = "Raw_"
)

// Default configuration values
const (
	// DefaultScoreCutoff is the identification score threshold below which
	// rows are discarded; rows with Score equal to the cutoff are kept.
	// Zero keeps every row with a numeric score
	DefaultScoreCutoff = 0.0

	// DefaultLayoutName is the registered table layout used when none is
	// configured
	DefaultLayoutName = "progenesis"

	// DefaultGroupKey is the column reconciliation groups by
	DefaultGroupKey = ColCompound
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxHeaderProbeRows is the number of leading rows inspected when
	// sniffing a delimiter
	MaxHeaderProbeRows = 10
)
