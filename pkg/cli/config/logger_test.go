package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestLoggerConfigure(t *testing.T) {
	t.Run("defaults are accepted", func(t *testing.T) {
		logger := Logger{level: "info", format: "console", output: "stdout"}
		closer, err := logger.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		logger := Logger{level: "loud", format: "console", output: "stdout"}
		_, err := logger.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		logger := Logger{level: "info", format: "xml", output: "stdout"}
		_, err := logger.Configure()
		gt.Error(t, err)
	})

	t.Run("file output is created and closed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stockroom.log")
		logger := Logger{level: "debug", format: "json", output: path}
		closer, err := logger.Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})
}
