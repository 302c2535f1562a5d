package polarity_test

import (
	"testing"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("canonical spellings", func(t *testing.T) {
		m, err := polarity.Parse("pos")
		require.NoError(t, err)
		assert.Equal(t, polarity.Positive, m)

		m, err = polarity.Parse("neg")
		require.NoError(t, err)
		assert.Equal(t, polarity.Negative, m)
	})

	t.Run("case and whitespace tolerated", func(t *testing.T) {
		m, err := polarity.Parse("  POS ")
		require.NoError(t, err)
		assert.Equal(t, polarity.Positive, m)
	})

	t.Run("long forms rejected", func(t *testing.T) {
		_, err := polarity.Parse("positive")
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := polarity.Parse("")
		assert.True(t, errors.IsConfiguration(err))
	})
}

func TestModeHelpers(t *testing.T) {
	assert.True(t, polarity.Positive.Valid())
	assert.False(t, polarity.Mode("both").Valid())

	assert.Equal(t, polarity.Negative, polarity.Positive.Other())
	assert.Equal(t, polarity.Positive, polarity.Negative.Other())

	assert.Equal(t, "pos", polarity.Positive.String())
	assert.Equal(t, []polarity.Mode{polarity.Positive, polarity.Negative}, polarity.Modes())
}
