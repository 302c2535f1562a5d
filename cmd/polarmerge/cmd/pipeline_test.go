package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarmerge/polarmerge"
	"github.com/polarmerge/polarmerge/internal/cmd/globals"
)

func TestPipelineOptionsDefaults(t *testing.T) {
	opts, err := pipelineOptions(&globals.PipelineFlags{ScoreCutoff: 25})
	require.NoError(t, err)

	pipe, err := polarmerge.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, 25.0, pipe.ScoreCutoff())
	assert.Equal(t, "progenesis", pipe.Layout().Name)
}

func TestPipelineOptionsLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	descriptor := "name: custom\nraw_marker: Raw area\nnormalized_marker: Normalised area\n"
	require.NoError(t, os.WriteFile(path, []byte(descriptor), 0o644))

	opts, err := pipelineOptions(&globals.PipelineFlags{LayoutFile: path})
	require.NoError(t, err)

	pipe, err := polarmerge.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, "custom", pipe.Layout().Name)
	assert.Equal(t, "Raw area", pipe.Layout().RawMarker)
}

func TestPipelineOptionsUnknownLayout(t *testing.T) {
	// The name resolves at pipeline construction, not flag parsing.
	opts, err := pipelineOptions(&globals.PipelineFlags{Layout: "no-such-layout"})
	require.NoError(t, err)

	_, err = polarmerge.New(opts...)
	assert.Error(t, err)
}
