package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionRoot(t *testing.T) {
	t.Run("should wire the server and jobs", func(t *testing.T) {
		cfg, err := ParseConfig(env(minimalEnv()))
		require.NoError(t, err)

		root, err := NewCompositionRoot(cfg, slog.New(slog.DiscardHandler))
		require.NoError(t, err)

		e, err := root.CreateHTTPServer()
		require.NoError(t, err)
		assert.NotEmpty(t, e.Routes())

		jm, err := root.CreateJobManager()
		require.NoError(t, err)
		assert.NotNil(t, jm)
	})
}
