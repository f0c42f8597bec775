package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"team-collab/pkg/logger"
	"team-collab/pkg/translator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeSystemLog(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.SystemLogger
	logger.SystemLogger = zap.New(core)
	t.Cleanup(func() { logger.SystemLogger = previous })
	return logs
}

func TestTranslate_EmbeddedCatalogs(t *testing.T) {
	assert.Equal(t, "Task not found", translator.Translate("taskNotFound", "", translator.LanguageEn))
	assert.Equal(t, "Tâche introuvable", translator.Translate("taskNotFound", "", translator.LanguageFr))
	assert.Equal(t, "Tâche introuvable", translator.Translate("taskNotFound", "", "fr-FR,fr;q=0.9,en;q=0.8"))
	assert.Equal(t, "Task not found", translator.Translate("taskNotFound", "", "de"), "unsupported languages fall back to English")
}

func TestTranslate_UnknownKey(t *testing.T) {
	assert.Equal(t, "fallback text", translator.Translate("noSuchKey", "fallback text", translator.LanguageEn))
	assert.Equal(t, "noSuchKey", translator.Translate("noSuchKey", "", translator.LanguageEn))
}

func TestInitTranslator_LoadsFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`hello = "Hello english"`), 0o644))
	t.Cleanup(func() { translator.InitTranslator(translator.Config{}) })

	translator.InitTranslator(translator.Config{TranslationFolder: dir})

	assert.Equal(t, "Hello english", translator.Translate("hello", "", translator.LanguageEn))
	assert.Equal(t, "Task not found", translator.Translate("taskNotFound", "", translator.LanguageEn), "embedded messages are kept")
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	logs := observeSystemLog(t)
	t.Cleanup(func() { translator.InitTranslator(translator.Config{}) })

	translator.InitTranslator(translator.Config{TranslationFolder: "/path/does/not/exist"})

	assert.Equal(t, "Task not found", translator.Translate("taskNotFound", "", translator.LanguageEn))
	require.Equal(t, 1, logs.FilterMessage("Error listing translation folder").Len())
}

func TestInitTranslator_BadFileIsLogged(t *testing.T) {
	logs := observeSystemLog(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`hello = `), 0o644))
	t.Cleanup(func() { translator.InitTranslator(translator.Config{}) })

	translator.InitTranslator(translator.Config{TranslationFolder: dir})

	entries := logs.FilterMessage("Error loading translation file").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "en.toml", entries[0].ContextMap()["file"])
	assert.Equal(t, "Task not found", translator.Translate("taskNotFound", "", translator.LanguageEn))
}
