package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"team-collab/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggersAreUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.AuditLogger.Info("no setup needed")
	})
}

func TestInitLoggers_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, logger.InitLoggers(dir))
	t.Cleanup(func() {
		logger.SyncLoggers()
	})

	logger.AuditLogger.Info("task created", zap.Int64("task_id", 7))
	logger.SyncLoggers()

	content, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"task created"`)
	assert.Contains(t, string(content), `"task_id":7`)
	assert.Contains(t, string(content), `"timestamp"`)

	for _, name := range []string{"errors.log", "request.log", "security.log", "system.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
