package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bookshelf/internal/config"
)

func TestSetupWritesToConfiguredFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "bookshelf.log")

	closer, err := Setup(cfg)
	require.NoError(t, err)

	log.Printf("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello from test")
}

func TestSetupDisabled(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	cfg := config.DefaultConfig()
	cfg.Log.Enabled = false
	cfg.Log.File = filepath.Join(t.TempDir(), "never.log")

	closer, err := Setup(cfg)
	require.NoError(t, err)
	log.Printf("dropped")
	require.NoError(t, closer.Close())

	_, err = os.Stat(cfg.Log.File)
	require.True(t, os.IsNotExist(err))
}
