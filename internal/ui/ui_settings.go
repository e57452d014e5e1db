package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-artclock/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect       *widget.Select
	modeSelect       *widget.Select
	styleSelect      *widget.Select
	tzEntry          *widget.Entry
	backendSelect    *widget.Select
	ollamaURLEntry   *widget.Entry
	ollamaModelEntry *widget.Entry
	geminiModelEntry *widget.Entry
	geminiKeyEntry   *widget.Entry
	entryPort        *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *ArtClockApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	generalCard := app.buildGeneralCard(sw)
	narrativeCard := app.buildNarrativeCard(sw, onLayoutChange)

	saveAction := func() {
		for _, v := range []fyne.Validatable{sw.entryPort, sw.tzEntry} {
			if err := v.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblVersion), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		narrativeCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from preferences and the keyring.
func (app *ArtClockApp) newSettingsWidgets() *settingsWidgets {
	p := app.Preferences
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Tr.Languages(), nil)
	sw.langSelect.SetSelected(p.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect(config.SupportedModes, nil)
	sw.modeSelect.SetSelected(p.StringWithFallback(config.PrefMode, config.DefaultMode))

	sw.styleSelect = widget.NewSelect(config.SupportedStyles, nil)
	sw.styleSelect.SetSelected(p.StringWithFallback(config.PrefStyle, config.DefaultStyle))

	sw.tzEntry = widget.NewEntry()
	sw.tzEntry.SetText(p.StringWithFallback(config.PrefTimezone, config.DefaultTimezone))
	sw.tzEntry.Validator = app.validateTimezone

	sw.backendSelect = widget.NewSelect(config.SupportedBackends, nil)

	sw.ollamaURLEntry = widget.NewEntry()
	sw.ollamaURLEntry.SetText(p.StringWithFallback(config.PrefOllamaURL, config.DefaultOllamaURL))

	sw.ollamaModelEntry = widget.NewEntry()
	sw.ollamaModelEntry.SetText(p.StringWithFallback(config.PrefOllamaModel, config.DefaultOllamaModel))

	sw.geminiModelEntry = widget.NewEntry()
	sw.geminiModelEntry.SetText(p.StringWithFallback(config.PrefGeminiModel, config.DefaultGeminiModel))

	sw.geminiKeyEntry = widget.NewPasswordEntry()
	if key, err := keyring.Get(config.KeyringService, config.KeyringGeminiUser); err == nil {
		sw.geminiKeyEntry.SetText(key)
	}

	sw.entryPort = NewRangedEntry(config.MinPort, config.MaxPort, RangeErrors{
		Required:   errors.New(app.GetMsg(config.TKeyErrPortReq)),
		NotNumber:  errors.New(app.GetMsg(config.TKeyErrPortNum)),
		OutOfRange: errors.New(app.GetMsg(config.TKeyErrPortRange)),
	})
	sw.entryPort.SetText(p.StringWithFallback(config.PrefServerPort, config.DefaultPort))

	return sw
}

// validateTimezone accepts any IANA zone name the system database knows.
func (app *ArtClockApp) validateTimezone(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrTimezone))
	}
	if _, err := time.LoadLocation(s); err != nil {
		return errors.New(app.GetMsg(config.TKeyErrTimezone))
	}
	return nil
}

func (app *ArtClockApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemMode := widget.NewFormItem(app.GetMsg(config.TKeyLblMode), sw.modeSelect)
	itemMode.HintText = app.GetMsg(config.TKeyHelpMode)

	itemStyle := widget.NewFormItem(app.GetMsg(config.TKeyLblStyle), sw.styleSelect)
	itemStyle.HintText = app.GetMsg(config.TKeyHelpStyle)

	itemTZ := widget.NewFormItem(app.GetMsg(config.TKeyLblTimezone), sw.tzEntry)
	itemTZ.HintText = app.GetMsg(config.TKeyHelpTimezone)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	form := widget.NewForm(itemLang, itemMode, itemStyle, itemTZ, itemPort)
	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", form)
}

// buildNarrativeCard shows only the fields of the selected backend.
func (app *ArtClockApp) buildNarrativeCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	ollamaForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblOllamaURL), sw.ollamaURLEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblOllamaModel), sw.ollamaModelEntry),
	)
	geminiForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblGeminiModel), sw.geminiModelEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblGeminiKey), sw.geminiKeyEntry),
	)

	updateVis := func(backend string) {
		ollamaForm.Hide()
		geminiForm.Hide()
		switch backend {
		case config.BackendOllama:
			ollamaForm.Show()
		case config.BackendGemini:
			geminiForm.Show()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.backendSelect.OnChanged = updateVis
	sw.backendSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefBackend, config.DefaultBackend))

	backendForm := widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblBackend), sw.backendSelect))
	return widget.NewCard(app.GetMsg(config.TKeyLblNarrative), "", container.NewVBox(backendForm, ollamaForm, geminiForm))
}

// saveSettings persists the form, applies it to the running clock and closes the window.
func (app *ArtClockApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	p := app.Preferences
	p.SetString(config.PrefLanguage, sw.langSelect.Selected)
	p.SetString(config.PrefMode, sw.modeSelect.Selected)
	p.SetString(config.PrefStyle, sw.styleSelect.Selected)
	p.SetString(config.PrefTimezone, sw.tzEntry.Text)
	p.SetString(config.PrefBackend, sw.backendSelect.Selected)
	p.SetString(config.PrefOllamaURL, sw.ollamaURLEntry.Text)
	p.SetString(config.PrefOllamaModel, sw.ollamaModelEntry.Text)
	p.SetString(config.PrefGeminiModel, sw.geminiModelEntry.Text)

	if sw.entryPort.Text != "" {
		p.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	if sw.geminiKeyEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, config.KeyringGeminiUser, sw.geminiKeyEntry.Text); err != nil {
			slog.Error(config.ErrKeyringWrite, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.applyLanguage()
	app.reconfigure()
	go app.performRefresh()

	w.Close()
}

// applyLanguage re-translates the window chrome and tray after a language change.
func (app *ArtClockApp) applyLanguage() {
	app.Tr.SetLanguage(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))
	app.RefreshTrayMenu()

	if app.MainWindow != nil {
		app.MainWindow.SetTitle(app.GetMsg(config.TKeyWinTitle))
	}
	if app.State != nil {
		app.State.SetChrome(app.GetMsg(config.TKeyHeader), app.GetMsg(config.TKeyFooter))
	}
}
