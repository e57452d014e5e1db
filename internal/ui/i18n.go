package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-artclock/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Translator localizes the window chrome. The time phrase itself is never translated.
type Translator struct {
	bundle    *i18n.Bundle
	languages []string

	mu        sync.RWMutex
	localizer *i18n.Localizer
}

// NewTranslator loads every embedded active.<lang>.json and selects lang.
// Files that fail to load are logged and skipped.
func NewTranslator(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	tr := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		tr.SetLanguage(lang)
		return tr
	}

	for _, entry := range entries {
		name := entry.Name()
		code, ok := localeCode(name)
		if !ok {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		tr.languages = append(tr.languages, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
		)
	}

	tr.SetLanguage(lang)
	return tr
}

// localeCode extracts "fr" from "active.fr.json".
func localeCode(name string) (string, bool) {
	if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
		return "", false
	}
	code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
	if code == "" {
		slog.Warn(config.MsgLocaleBadName,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
		return "", false
	}
	return code, true
}

// Languages lists the codes of the loaded locale files.
func (t *Translator) Languages() []string {
	return t.languages
}

// SetLanguage switches the active locale. English is the fallback for missing keys.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	l := i18n.NewLocalizer(t.bundle, lang, config.DefaultLanguage)

	t.mu.Lock()
	t.localizer = l
	t.mu.Unlock()
}

// Msg translates key, returning the key itself when no translation exists.
func (t *Translator) Msg(key string) string {
	return t.Template(key, nil)
}

// Template translates key and executes it with data.
func (t *Translator) Template(key string, data map[string]any) string {
	t.mu.RLock()
	l := t.localizer
	t.mu.RUnlock()

	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
