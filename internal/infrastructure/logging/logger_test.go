package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/wishlist-api/configs"
)

func TestNewLogger_StdoutOnly(t *testing.T) {
	logger, closer, err := NewLogger(&config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	defer closer.Close()

	require.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	require.True(t, isJSON)
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, closer, err := NewLogger(&config.LogConfig{Level: "loud", Format: "text"})
	require.NoError(t, err)
	defer closer.Close()

	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, isText)
}

func TestNewLogger_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	logger, closer, err := NewLogger(&config.LogConfig{Level: "info", Format: "json", FilePath: path})
	require.NoError(t, err)

	logger.Info("hello file")
	require.NoError(t, closer.Close())

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "hello file")
}
