package translator

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"team-collab/pkg/logger"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Translator holds every loaded message file. It is always usable: before
// InitTranslator runs it carries the embedded catalogs.
var Translator = newBundle()

type Config struct {
	// TranslationFolder optionally points at extra *.toml files that add to
	// or override the embedded catalogs.
	TranslationFolder string
}

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("translator: read embedded locales: %v", err))
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+entry.Name()); err != nil {
			panic(fmt.Sprintf("translator: load %s: %v", entry.Name(), err))
		}
	}
	return bundle
}

// InitTranslator rebuilds Translator from the embedded catalogs plus any
// files in cfg.TranslationFolder.
func InitTranslator(cfg Config) {
	bundle := newBundle()

	if cfg.TranslationFolder != "" {
		files, err := os.ReadDir(cfg.TranslationFolder)
		if err != nil {
			logger.SystemLogger.Warn("Error listing translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		}
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
				continue
			}
			if _, err := bundle.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
				logger.SystemLogger.Warn("Error loading translation file", zap.String("file", f.Name()), zap.Error(err))
			}
		}
	}

	Translator = bundle
}

// Translate localizes key for the Accept-Language value lang. Unknown keys
// return fallback, or the key itself when fallback is empty.
func Translate(key, fallback, lang string) string {
	localizer := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		if fallback != "" {
			return fallback
		}
		return key
	}
	return msg
}
