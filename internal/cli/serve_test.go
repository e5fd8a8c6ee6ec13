package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/herodex/internal/config"
)

func TestServe_RequiresAPIKey(t *testing.T) {
	setupCLITest(t)

	res := execute(t, "serve", "--addr", "127.0.0.1:0")

	require.ErrorIs(t, res.err, config.ErrMissingAPIKey)
}

func TestServe_InvalidBaseURL(t *testing.T) {
	setupCLITest(t)

	res := execute(t, "serve", "--api-key", "k", "--api-base", "not a url")

	require.ErrorIs(t, res.err, config.ErrInvalidBaseURL)
}
