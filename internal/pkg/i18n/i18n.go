// Package i18n translates error kinds into user-facing messages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var locales = []string{"locales/active.en.json", "locales/active.id.json"}

type Translator struct {
	bundle          *goi18n.Bundle
	defaultLanguage string
}

func NewTranslator(defaultLanguage string) (*Translator, error) {
	tag, err := language.Parse(defaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("parse default language %q: %w", defaultLanguage, err)
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, path := range locales {
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	return &Translator{bundle: bundle, defaultLanguage: defaultLanguage}, nil
}

// Translate renders messageID for the first supported language in
// acceptLanguage. It falls back to fallback when the message is unknown.
func (t *Translator) Translate(acceptLanguage, messageID, fallback string, data map[string]any) string {
	localizer := goi18n.NewLocalizer(t.bundle, acceptLanguage, t.defaultLanguage)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
