package middleware

import (
	"team-collab/pkg/translator"

	"github.com/gofiber/fiber/v2"
)

const langKey = "lang"

// Language stores the raw Accept-Language value for error translation.
func Language() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := c.Get(fiber.HeaderAcceptLanguage)
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Locals(langKey, lang)
		return c.Next()
	}
}

// GetLang returns the language chosen by Language, or the request header
// when the middleware did not run.
func GetLang(c *fiber.Ctx) string {
	if lang, ok := c.Locals(langKey).(string); ok {
		return lang
	}
	if lang := c.Get(fiber.HeaderAcceptLanguage); lang != "" {
		return lang
	}
	return translator.LanguageEn
}
