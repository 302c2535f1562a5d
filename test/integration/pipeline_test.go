package integration

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/polarmerge/polarmerge"
	"github.com/polarmerge/polarmerge/internal/ingest"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/export"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/polarmerge/polarmerge/pkg/samples"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

func buildSamples(t *testing.T) *samples.Map {
	t.Helper()
	smap, err := samples.New(
		samples.Mapping{Pos: "PosRun1", Neg: "NegRun1", Unique: "S1"},
		samples.Mapping{Pos: "PosRun2", Neg: "NegRun2", Unique: "S2"},
	)
	if err != nil {
		t.Fatalf("Failed to build sample map: %v", err)
	}
	return smap
}

func buildIntensity(s1, s2 string) tables.Grid {
	return tables.Grid{
		{"", "", "Raw abundance", "", "Normalised abundance", ""},
		{"Compound", "m/z", s1, s2, s1, s2},
		{"C1", "101.1", "1000", "2000", "0.5", "0.6"},
		{"C2", "202.2", "3000", "4000", "0.7", "0.8"},
		{"C3", "303.3", "5000", "6000", "0.9", "1.0"},
	}
}

func buildIdents(t *testing.T, rows ...[]string) *tables.Table {
	t.Helper()
	records := [][]string{{"Compound", "Score", "Fragmentation_Score", "Description"}}
	records = append(records, rows...)
	idents, err := tables.FromRecords(records)
	if err != nil {
		t.Fatalf("Failed to build identifications: %v", err)
	}
	return idents
}

func TestPipelineEndToEnd(t *testing.T) {
	pipe, err := polarmerge.New(polarmerge.WithScoreCutoff(20))
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}

	smap := buildSamples(t)
	result, err := pipe.Run(polarmerge.RunInput{
		PosIntensity: buildIntensity("PosRun1", "PosRun2"),
		PosIdentifications: buildIdents(t,
			[]string{"C1", "45", "80", "alanine"},
			[]string{"C2", "35", "90", "betaine"},
			[]string{"C3", "10", "99", "choline"}, // below cutoff
		),
		NegIntensity: buildIntensity("NegRun1", "NegRun2"),
		NegIdentifications: buildIdents(t,
			[]string{"C1", "50", "60", "alanine"},
		),
		Samples: smap,
	})
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	if result.Pos == nil || result.Pos.Len() != 2 {
		t.Fatalf("Expected 2 pos rows, got %d", result.Pos.Len())
	}
	if result.Neg == nil || result.Neg.Len() != 1 {
		t.Fatalf("Expected 1 neg row, got %d", result.Neg.Len())
	}
	if result.Reconciled == nil {
		t.Fatal("Expected reconciled table")
	}
	if result.GeneratedAt.IsZero() {
		t.Error("Expected run timestamp")
	}

	// Merged tables lead with the key columns and carry renamed sample
	// columns from both abundance blocks.
	names := result.Pos.Names()
	if names[0] != "Compound" || names[1] != "Polarity" {
		t.Errorf("Expected Compound, Polarity leading columns, got %v", names[:2])
	}
	for _, want := range []string{"Norm_S1", "Norm_S2", "Raw_S1", "Raw_S2"} {
		if !result.Pos.Has(want) {
			t.Errorf("Expected pos table to have column %q", want)
		}
	}

	// Pos rows ordered by descending fragmentation score: C2 (90) before C1 (80).
	if got := result.Pos.Cell(0, "Compound").String(); got != "C2" {
		t.Errorf("Expected C2 first in pos table, got %q", got)
	}
	if got := result.Pos.Cell(0, "Polarity").String(); got != "pos" {
		t.Errorf("Expected polarity tag pos, got %q", got)
	}

	// Reconciled keeps the neg hit for C1 (50 > 45) and the pos-only C2.
	if result.Reconciled.Len() != 2 {
		t.Fatalf("Expected 2 reconciled rows, got %d", result.Reconciled.Len())
	}
	foundC1 := false
	for i := 0; i < result.Reconciled.Len(); i++ {
		if result.Reconciled.Cell(i, "Compound").String() != "C1" {
			continue
		}
		foundC1 = true
		if got := result.Reconciled.Cell(i, "Polarity").String(); got != "neg" {
			t.Errorf("Expected neg to win C1, got polarity %q", got)
		}
	}
	if !foundC1 {
		t.Error("Expected C1 in reconciled table")
	}
}

func TestPipelineSingleMode(t *testing.T) {
	pipe, err := polarmerge.New()
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}

	result, err := pipe.Run(polarmerge.RunInput{
		NegIntensity:       buildIntensity("NegRun1", "NegRun2"),
		NegIdentifications: buildIdents(t, []string{"C1", "50", "60", "alanine"}),
		Samples:            buildSamples(t),
	})
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	if result.Pos != nil {
		t.Error("Expected no pos table for single-mode run")
	}
	if result.Neg == nil || result.Neg.Len() != 1 {
		t.Fatal("Expected neg table with 1 row")
	}
	if result.Reconciled != nil {
		t.Error("Expected no reconciled table for single-mode run")
	}
}

func TestPipelineNoInput(t *testing.T) {
	pipe, err := polarmerge.New()
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}

	_, err = pipe.Run(polarmerge.RunInput{Samples: buildSamples(t)})
	if err == nil {
		t.Fatal("Expected error when no intensity grid is provided")
	}
	if !errors.IsConfiguration(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestPipelineUnmappedSample(t *testing.T) {
	pipe, err := polarmerge.New()
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}

	smap, err := samples.New(samples.Mapping{Pos: "PosRun1", Neg: "NegRun1", Unique: "S1"})
	if err != nil {
		t.Fatalf("Failed to build sample map: %v", err)
	}

	// The intensity grid carries PosRun2, which the map does not know.
	_, err = pipe.MergeMode(polarity.Positive, buildIntensity("PosRun1", "PosRun2"), buildIdents(t), smap)
	if err == nil {
		t.Fatal("Expected error for unmapped sample column")
	}
	if !errors.IsMissingSample(err) {
		t.Errorf("Expected missing sample error, got %v", err)
	}
}

// TestPipelineFromFiles drives the same path the CLI does: raw exports on
// disk, ingested, merged, written back out, and read again.
func TestPipelineFromFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	intensityCSV := "" +
		",,Raw abundance,,Normalised abundance,\n" +
		"Compound,m/z,PosRun1,PosRun2,PosRun1,PosRun2\n" +
		"C1,101.1,1000,2000,0.5,0.6\n" +
		"C2,202.2,3000,4000,0.7,0.8\n"
	identsCSV := "" +
		"Compound,Score,Fragmentation_Score,Description\n" +
		"C1,45,80,alanine\n" +
		"C2,35,90,betaine\n"
	samplesCSV := "" +
		"Original name (pos),Original name (neg),Unique name\n" +
		"PosRun1,NegRun1,S1\n" +
		"PosRun2,NegRun2,S2\n"

	paths := map[string]string{
		"intensity.csv": intensityCSV,
		"idents.csv":    identsCSV,
		"samples.csv":   samplesCSV,
	}
	for name, content := range paths {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	grid, err := ingest.Grid(ctx, filepath.Join(dir, "intensity.csv"))
	if err != nil {
		t.Fatalf("Failed to ingest intensity grid: %v", err)
	}
	idents, err := ingest.Table(ctx, filepath.Join(dir, "idents.csv"))
	if err != nil {
		t.Fatalf("Failed to ingest identifications: %v", err)
	}
	smap, err := ingest.Samples(ctx, filepath.Join(dir, "samples.csv"))
	if err != nil {
		t.Fatalf("Failed to ingest sample map: %v", err)
	}

	pipe, err := polarmerge.New(polarmerge.WithScoreCutoff(40))
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}

	merged, err := pipe.MergeMode(polarity.Positive, grid, idents, smap)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Len() != 1 {
		t.Fatalf("Expected 1 row above cutoff 40, got %d", merged.Len())
	}
	if got := merged.Cell(0, "Compound").String(); got != "C1" {
		t.Errorf("Expected C1 to survive the cutoff, got %q", got)
	}

	out := filepath.Join(dir, "pos_merged.csv")
	if err := export.Write(out, merged); err != nil {
		t.Fatalf("Failed to export merged table: %v", err)
	}

	back, err := ingest.Table(ctx, out)
	if err != nil {
		t.Fatalf("Failed to re-ingest merged table: %v", err)
	}
	if !reflect.DeepEqual(back.Records(), merged.Records()) {
		t.Errorf("Round-tripped table differs:\n got %v\nwant %v", back.Records(), merged.Records())
	}
}

func TestPipelineRunDeterministic(t *testing.T) {
	pipe, err := polarmerge.New()
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}

	input := polarmerge.RunInput{
		PosIntensity: buildIntensity("PosRun1", "PosRun2"),
		PosIdentifications: buildIdents(t,
			[]string{"C1", "45", "80", "alanine"},
			[]string{"C2", "35", "90", "betaine"},
		),
		NegIntensity:       buildIntensity("NegRun1", "NegRun2"),
		NegIdentifications: buildIdents(t, []string{"C1", "50", "60", "alanine"}),
		Samples:            buildSamples(t),
	}

	first, err := pipe.Run(input)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := pipe.Run(input)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if !reflect.DeepEqual(first.Reconciled.Records(), second.Reconciled.Records()) {
		t.Error("Expected identical reconciled output across runs")
	}
}
