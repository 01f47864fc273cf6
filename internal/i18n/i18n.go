// Package i18n serves the bilingual (English/Hindi) API message catalog.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// SupportedLanguages lists the languages the API can answer in.
var SupportedLanguages = []string{"en", "hi"}

const defaultLang = "en"

// Catalog holds the loaded translations, keyed by language then message key.
type Catalog struct {
	translations map[string]map[string]string
	matcher      language.Matcher
}

// Load parses the embedded locale files and builds the language matcher.
func Load() (*Catalog, error) {
	c := &Catalog{translations: make(map[string]map[string]string)}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))

		b, err := localesFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		msgs := make(map[string]string)
		if err := json.Unmarshal(b, &msgs); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		c.translations[lang] = msgs
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Match resolves an Accept-Language header value to a supported language,
// falling back to English.
func (c *Catalog) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return defaultLang
	}
	return SupportedLanguages[idx]
}

// T returns the translation for key in lang. Unknown languages fall back to
// English; unknown keys come back verbatim so a missing entry is visible.
func (c *Catalog) T(lang, key string) string {
	msgs, ok := c.translations[lang]
	if !ok {
		msgs = c.translations[defaultLang]
	}
	if msg, ok := msgs[key]; ok {
		return msg
	}
	if lang != defaultLang {
		if msg, ok := c.translations[defaultLang][key]; ok {
			return msg
		}
	}
	return key
}
