package main_test

import (
	"strings"
	"testing"

	main "github.com/fwojciec/treecrumb/cmd/treecrumb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAML(t *testing.T) {
	t.Parallel()

	t.Run("accepts an empty file", func(t *testing.T) {
		t.Parallel()

		r, err := main.YAML(strings.NewReader(""))

		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := main.YAML(strings.NewReader("url: [unterminated"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing YAML config")
	})
}
