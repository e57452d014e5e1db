package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-artclock/internal/config"
)

var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyHeader,
	config.TKeyFooter,
	config.TKeyMenuRefresh,
	config.TKeyMenuSettings,
	config.TKeyTrayStatus,
	config.TKeyTrayFallback,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblMode,
	config.TKeyHelpMode,
	config.TKeyLblStyle,
	config.TKeyHelpStyle,
	config.TKeyLblTimezone,
	config.TKeyHelpTimezone,
	config.TKeyLblBackend,
	config.TKeyLblOllamaURL,
	config.TKeyLblOllamaModel,
	config.TKeyLblGeminiModel,
	config.TKeyLblGeminiKey,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblNarrative,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblVersion,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrTimezone,
}

// TestI18nIntegrity ensures every translation key defined in config.go exists in
// every locale file, and that no locale carries keys the code never asks for.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]string
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be a flat string map")

			for key := range defined {
				assert.NotEmptyf(t, jsonMap[key], "Key '%s' is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, defined[jsonKey], "Key '%s' in active.%s.json is not defined in config.go", jsonKey, lang)
			}
		})
	}
}
