package ui

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/tartampluch/go-artclock/internal/config"
	"github.com/tartampluch/go-artclock/internal/engine"
	"github.com/tartampluch/go-artclock/internal/schedule"
	"github.com/tartampluch/go-artclock/internal/server"
	"github.com/zalando/go-keyring"
)

// NarratorFactory builds the narrative backend for a configuration.
type NarratorFactory func(ctx context.Context, cfg engine.NarratorConfig) (engine.Narrator, error)

// ArtClockApp encapsulates the UI state, preferences, and background logic.
type ArtClockApp struct {
	App         fyne.App
	MainWindow  fyne.Window
	Preferences fyne.Preferences
	Tr          *Translator
	Ctx         context.Context

	Server      *server.MomentServer
	Clock       engine.Clock
	TimerClock  schedule.Clock
	NewNarrator NarratorFactory
	Rand        *rand.Rand

	State     *AppState
	Refresher *engine.Refresher

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	settingsWindow fyne.Window

	mu        sync.Mutex
	current   ClockConfig
	ticker    *schedule.Scheduler
	animator  *schedule.Scheduler
	chimesKey string
}

// ClockConfig is the display configuration read from preferences.
type ClockConfig struct {
	Mode     string
	Style    string
	Location *time.Location
	Policy   engine.PhrasePolicy
	Narrator engine.NarratorConfig
}

// NewArtClockApp constructs the application and wires dependencies.
func NewArtClockApp(a fyne.App, ctx context.Context, srv *server.MomentServer) *ArtClockApp {
	a.SetIcon(theme.HistoryIcon())

	prefs := a.Preferences()
	return &ArtClockApp{
		App:         a,
		Preferences: prefs,
		Tr:          NewTranslator(prefs.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)),
		Ctx:         ctx,
		Server:      srv,
		Clock:       schedule.RealClock{},
		TimerClock:  schedule.RealClock{},
		NewNarrator: engine.NewNarrator,
	}
}

// GetMsg is a shorthand for the active translation of key.
func (app *ArtClockApp) GetMsg(key string) string {
	return app.Tr.Msg(key)
}

// Run launches the application services and the main UI loop.
func (app *ArtClockApp) Run() {
	app.buildMainWindow()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.reconfigure()
	app.performRefresh()

	go func() {
		<-app.Ctx.Done()
		app.stopSchedulers()
	}()

	app.MainWindow.Show()
	app.App.Run()
	app.stopSchedulers()
}

// buildMainWindow creates the installation window and its key bindings.
func (app *ArtClockApp) buildMainWindow() {
	app.State = NewAppState(app.GetMsg(config.TKeyHeader), app.GetMsg(config.TKeyFooter))

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	w.SetContent(app.State.Content)
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.Canvas().SetOnTypedKey(app.handleKey)
	w.SetMaster()

	app.State.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.MainWindow = w
}

// handleKey maps Escape to quit and Space to a forced refresh.
func (app *ArtClockApp) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		app.App.Quit()
	case fyne.KeySpace:
		go app.performRefresh()
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *ArtClockApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, nil)
	app.TrayStatusItem.Disabled = true

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performRefresh()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *ArtClockApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// updateTrayStatus shows the current phrase as the first tray item.
func (app *ArtClockApp) updateTrayStatus(m engine.Moment) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	key := config.TKeyTrayStatus
	if m.Fallback {
		key = config.TKeyTrayFallback
	}
	label := app.Tr.Template(key, map[string]any{"Phrase": m.Phrase.Text})
	if label == key {
		label = m.Phrase.Text
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// performRefresh recomposes the current minute immediately.
func (app *ArtClockApp) performRefresh() {
	if app.Refresher == nil {
		return
	}
	app.Refresher.Force(app.Ctx)
}

// loadClockConfig assembles the clock configuration from preferences and the keyring.
// Invalid values fall back to defaults so the clock always starts.
func (app *ArtClockApp) loadClockConfig() ClockConfig {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	cfg := ClockConfig{
		Mode:  oneOf(app.Preferences.StringWithFallback(config.PrefMode, config.DefaultMode), config.SupportedModes, config.DefaultMode),
		Style: oneOf(app.Preferences.StringWithFallback(config.PrefStyle, config.DefaultStyle), config.SupportedStyles, config.DefaultStyle),
		Narrator: engine.NarratorConfig{
			Backend:     oneOf(app.Preferences.StringWithFallback(config.PrefBackend, config.DefaultBackend), config.SupportedBackends, config.DefaultBackend),
			OllamaURL:   app.Preferences.StringWithFallback(config.PrefOllamaURL, config.DefaultOllamaURL),
			OllamaModel: app.Preferences.StringWithFallback(config.PrefOllamaModel, config.DefaultOllamaModel),
			GeminiModel: app.Preferences.StringWithFallback(config.PrefGeminiModel, config.DefaultGeminiModel),
		},
	}

	cfg.Policy, _ = engine.PolicyForStyle(cfg.Style)

	tz := app.Preferences.StringWithFallback(config.PrefTimezone, config.DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn(config.MsgTimezoneInvalid, config.LogKeyTimezone, tz, config.LogKeyError, err)
		loc, err = time.LoadLocation(config.DefaultTimezone)
		if err != nil {
			loc = time.Local
		}
	}
	cfg.Location = loc

	if cfg.Narrator.Backend == config.BackendGemini {
		if key, err := keyring.Get(config.KeyringService, config.KeyringGeminiUser); err == nil {
			cfg.Narrator.GeminiAPIKey = key
		} else {
			log.Debug(config.ErrKeyringRead, config.LogKeyError, err)
		}
	}

	return cfg
}

// oneOf returns v when it is listed in allowed, otherwise def.
func oneOf(v string, allowed []string, def string) string {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return def
}

// reconfigure rebuilds the refresher configuration and restarts the timers.
func (app *ArtClockApp) reconfigure() {
	cfg := app.loadClockConfig()

	slog.Info(config.MsgReconfigure,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyMode, cfg.Mode,
		config.LogKeyStyle, cfg.Style,
		config.LogKeyTimezone, cfg.Location.String(),
		config.LogKeyBackend, cfg.Narrator.Backend,
	)

	rc := engine.RefreshConfig{
		Location:       cfg.Location,
		Policy:         cfg.Policy,
		DigitalClock:   cfg.Mode == config.ModeInstallation,
		OnMinuteChange: cfg.Mode == config.ModeInstallation,
	}
	if cfg.Mode != config.ModePlain {
		rc.Storyteller = engine.NewStoryteller(app.buildNarrator(cfg.Narrator), app.Rand)
	}

	app.mu.Lock()
	app.current = cfg
	app.chimesKey = ""
	app.mu.Unlock()

	if app.Refresher == nil {
		app.Refresher = engine.NewRefresher(app.Clock, app, rc)
	} else {
		app.Refresher.Configure(rc)
	}

	if app.State != nil {
		fyne.Do(func() { app.State.ApplyMode(cfg.Mode) })
	}

	app.restartSchedulers(cfg.Mode)
}

// buildNarrator returns nil when the backend is disabled or cannot be set up;
// the storyteller then answers with fallback sentences.
func (app *ArtClockApp) buildNarrator(cfg engine.NarratorConfig) engine.Narrator {
	n, err := app.NewNarrator(app.Ctx, cfg)
	if err != nil {
		slog.Warn(config.ErrNarratorSetup,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyBackend, cfg.Backend,
			config.LogKeyError, err,
		)
		return nil
	}
	return n
}

// restartSchedulers arms the refresh timer for the mode and, in installation mode, the animation.
func (app *ArtClockApp) restartSchedulers(mode string) {
	app.stopSchedulers()

	cadence := schedule.MinuteBoundary
	if mode == config.ModeInstallation {
		cadence = schedule.SecondBoundary
	}

	ticker := schedule.New(config.CompEngine, app.TimerClock, cadence, func(now time.Time) {
		app.Refresher.TickAt(app.Ctx, now)
	})

	var animator *schedule.Scheduler
	if mode == config.ModeInstallation && app.State != nil {
		animator = schedule.New(config.CompUI, app.TimerClock, schedule.Every(config.AnimationInterval), func(time.Time) {
			fyne.Do(func() {
				if app.MainWindow != nil {
					app.State.Animate(app.MainWindow.Canvas().Size())
				}
			})
		})
	}

	app.mu.Lock()
	app.ticker, app.animator = ticker, animator
	app.mu.Unlock()

	ticker.Start()
	if animator != nil {
		animator.Start()
	}
}

func (app *ArtClockApp) stopSchedulers() {
	app.mu.Lock()
	ticker, animator := app.ticker, app.animator
	app.ticker, app.animator = nil, nil
	app.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	if animator != nil {
		animator.Stop()
	}
}

// ShowClock implements engine.Display.
func (app *ArtClockApp) ShowClock(now time.Time) {
	if app.State == nil {
		return
	}
	fyne.Do(func() { app.State.SetClock(now) })
}

// ShowMoment implements engine.Display. It mirrors the moment to the HTTP server
// and regenerates the chime calendar when the date or style changed.
func (app *ArtClockApp) ShowMoment(m engine.Moment) {
	app.Server.UpdateMoment(m.Narrative)
	app.updateChimes(m.At)

	fyne.Do(func() {
		if app.State != nil {
			app.State.SetMoment(m)
		}
		app.updateTrayStatus(m)
	})
}

// updateChimes publishes today's calendar once per date, zone and style.
func (app *ArtClockApp) updateChimes(at time.Time) {
	app.mu.Lock()
	defer app.mu.Unlock()

	key := strings.Join([]string{at.Format(config.DateFormatFullDash), at.Location().String(), app.current.Style}, "|")
	if key == app.chimesKey {
		return
	}

	ics, err := engine.ChimeCalendar(at, app.current.Policy)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err,
		)
		return
	}

	app.Server.UpdateChimes(ics)
	app.chimesKey = key
}
