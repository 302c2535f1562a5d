package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polarmerge/polarmerge/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	// Create directory with standard permissions
	dir := filepath.Join(".", "data")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}

	// Create file with standard permissions
	file := filepath.Join(dir, "merged.csv")
	data := []byte("Compound,Score\n")
	if err := os.WriteFile(file, data, constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_columns shows the canonical column vocabulary
func Example_columns() {
	fmt.Printf("Join key: %s\n", constants.ColCompound)
	fmt.Printf("Tie break: %s\n", constants.ColFragmentationScore)
	fmt.Printf("Provenance: %s\n", constants.ColPolarity)

	// Output:
	// Join key: Compound
	// Tie break: Fragmentation_Score
	// Provenance: Polarity
}

// Example_blockMarkers shows the vendor layout markers and the prefixes
// applied to renamed sample columns
func Example_blockMarkers() {
	fmt.Printf("Raw block marker: %s\n", constants.MarkerRaw)
	fmt.Printf("Normalized block marker: %s\n", constants.MarkerNormalized)
	fmt.Printf("Raw block prefix: %s\n", constants.PrefixRaw)
	fmt.Printf("Normalized block prefix: %s\n", constants.PrefixNormalized)

	// Output:
	// Raw block marker: Raw abundance
	// Normalized block marker: Normalised abundance
	// Raw block prefix: Norm_
	// Normalized block prefix: Raw_
}

// Example_defaults demonstrates default configuration values
func Example_defaults() {
	cutoff := constants.DefaultScoreCutoff
	fmt.Printf("Score cutoff: %.0f\n", cutoff)
	fmt.Printf("Layout: %s\n", constants.DefaultLayoutName)
	fmt.Printf("Group key: %s\n", constants.DefaultGroupKey)

	// Output:
	// Score cutoff: 0
	// Layout: progenesis
	// Group key: Compound
}
