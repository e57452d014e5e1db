package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Art-Clock/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Art Clock"
	AppID             = "com.github.tartampluch.go-artclock"
	KeyringService    = "com.github.tartampluch.go-artclock"
	KeyringGeminiUser = "gemini_api_key"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands & Flags
// -----------------------------------------------------------------------------

const (
	CmdRoot          = "art-clock"
	CmdPhrase        = "phrase [HH:MM]"
	CmdDescRoot      = "A desktop clock that tells the time in words"
	CmdDescPhrase    = "Print the time phrase for HH:MM (or now) and exit"
	FlagDebug        = "debug"
	FlagStyle        = "style"
	FlagTZ           = "tz"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescStyle    = "Phrase style: plain or poetic"
	FlagDescTZ       = "IANA time zone used when HH:MM is omitted"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	FormatClockArg   = "15:04"
)

// -----------------------------------------------------------------------------
// Display Modes, Phrase Styles & Narrative Backends
// -----------------------------------------------------------------------------

const (
	ModePlain        = "plain"
	ModePoetic       = "poetic"
	ModeInstallation = "installation"

	StylePlain  = "plain"
	StylePoetic = "poetic"

	BackendNone   = "none"
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// SupportedModes lists display modes in the order shown by the settings window.
var SupportedModes = []string{ModePlain, ModePoetic, ModeInstallation}

// SupportedStyles lists phrase styles.
var SupportedStyles = []string{StylePlain, StylePoetic}

// SupportedBackends lists narrative backends.
var SupportedBackends = []string{BackendNone, BackendOllama, BackendGemini}

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Preferences
// -----------------------------------------------------------------------------

const (
	PrefLanguage    = "language"
	PrefMode        = "display_mode"
	PrefStyle       = "phrase_style"
	PrefTimezone    = "timezone"
	PrefBackend     = "narrative_backend"
	PrefOllamaURL   = "ollama_url"
	PrefOllamaModel = "ollama_model"
	PrefGeminiModel = "gemini_model"
	PrefServerPort  = "server_port"
	PrefLastRun     = "last_run_version"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultMode        = ModeInstallation
	DefaultStyle       = StylePoetic
	DefaultTimezone    = "America/New_York"
	DefaultBackend     = BackendOllama
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "gemma3:4b"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultPort        = "18081"
	DefaultLanguage    = "en"
	DefaultDayPart     = "temporal moment"

	// Narrator sampling, kept low so sentences stay on topic.
	NarrativeTemperature = 0.3
	NarrativeMaxTokens   = 80
)

// -----------------------------------------------------------------------------
// Scheduling & Animation
// -----------------------------------------------------------------------------

const (
	NarrativeTimeout  = 20 * time.Second
	AnimationInterval = 80 * time.Millisecond

	ParticleCount      = 15
	ParticleDrift      = 0.3
	ParticleMargin     = 50
	ParticleWaveFreq   = 0.01
	ParticleWaveAmp    = 80
	ParticlePhaseY     = 20
	ParticlePhaseSize  = 10
	ParticlePulseFreq  = 0.05
	ParticleBaseRadius = 2
	ParticleHueStep    = 0.15
	ParticleSaturation = 0.4
	ParticleValue      = 0.08
	HueShiftPerFrame   = 0.0008
)

// -----------------------------------------------------------------------------
// Phrase Vocabulary
// -----------------------------------------------------------------------------

const (
	WordOClock   = "o'clock"
	WordPast     = "past"
	WordTo       = "to"
	WordQuarter  = "quarter"
	WordHalf     = "half"
	WordMidnight = "midnight"
	WordNoon     = "noon"
	MeridiemAM   = "AM"
	MeridiemPM   = "PM"
)

// -----------------------------------------------------------------------------
// Narrative Prompts & Fallbacks
// -----------------------------------------------------------------------------

// Prompt and fallback templates take, in order: the phrase words and the meridiem,
// plus the day-part context for prompts (see engine.Storyteller).
var NarrativePrompts = []string{
	"Write a contemplative sentence about %[3]s at %[1]s %[2]s. Focus on the feeling of this moment.",
	"Create a poetic observation about consciousness and time at %[1]s %[2]s during %[3]s.",
	"Write a philosophical reflection on the nature of %[1]s %[2]s and %[3]s.",
}

// NarrativePromptSuffix constrains the length and the opening of the sentence.
const NarrativePromptSuffix = " Keep it under 40 words and start with 'At %[1]s %[2]s,'."

// NarrativeFallbacks are shown when the narrator is unreachable or returns nothing.
var NarrativeFallbacks = []string{
	"At %[1]s %[2]s, time becomes visible in the space between thoughts.",
	"At %[1]s %[2]s, consciousness touches the eternal present.",
	"At %[1]s %[2]s, moments crystallize into awareness.",
}

// -----------------------------------------------------------------------------
// UI Layout
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 1200
	MainWindowHeight    = 800
	SettingsWindowWidth = 600
	LayoutColumnsDouble = 2
	UnitDivisor         = 40
	TextSizeHeader      = 0.5
	TextSizeDigital     = 0.8
	TextSizeFooter      = 0.5
	FormatDigital       = "15:04:05 • Monday"

	ColorBackground = "#000000"
	ColorSubtle     = "#666666"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyHeader         = "lbl_header"
	TKeyFooter         = "lbl_footer"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"
	TKeyTrayFallback   = "tray_status_fallback"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblMode        = "lbl_mode"
	TKeyHelpMode       = "help_mode"
	TKeyLblStyle       = "lbl_style"
	TKeyHelpStyle      = "help_style"
	TKeyLblTimezone    = "lbl_timezone"
	TKeyHelpTimezone   = "help_timezone"
	TKeyLblBackend     = "lbl_backend"
	TKeyLblOllamaURL   = "lbl_ollama_url"
	TKeyLblOllamaModel = "lbl_ollama_model"
	TKeyLblGeminiModel = "lbl_gemini_model"
	TKeyLblGeminiKey   = "lbl_gemini_key"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblNarrative   = "lbl_narrative"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblVersion     = "lbl_version"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrTimezone  = "err_timezone"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Art Clock//Chimes//EN"
	ICalCalName   = "Chimes"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "artclock"
	ICalTrigger   = "PT0S"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropXWRTimezone = "X-WR-TIMEZONE"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	ChimesPerDay       = 24
	ChimeDuration      = 1 * time.Minute
	DefaultICalRefresh = 1 * time.Hour
	FormatChimeUID     = "%s-%02d@%s"
	DateFormatFullDash = "2006-01-02"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 1024 * 1024 // 1MB, a sentence never comes close
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteRootExact      = "/{$}"
	NetworkTCP          = "tcp"
	RouteChimes         = "/chimes.ics"
	OllamaGeneratePath  = "/api/generate"
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidTime      = "time out of range"
	ErrInvalidClockArg  = "expected HH:MM"
	ErrUnknownStyle     = "unknown phrase style"
	ErrUnknownBackend   = "unknown narrative backend"
	ErrNarratorFailed   = "narrative generation failed"
	ErrNarratorEmpty    = "narrator returned an empty sentence"
	ErrGeminiKey        = "gemini API key is required"
	ErrGeminiClient     = "failed to create gemini client"
	ErrTimezone         = "failed to load time zone"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrEncodeRequest    = "failed to encode narrator request"
	ErrDecodeResponse   = "failed to decode narrator response"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrKeyringRead      = "API key retrieval failed (might be empty)"
	ErrKeyringWrite     = "failed to save API key to keyring"
	ErrNarratorSetup    = "narrator unavailable, narratives will use fallbacks"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Clock initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel = "Art Clock"
	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Route cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "warning: file logging disabled: %v\n"
	MsgSchedulerArmed  = "Scheduler armed"
	MsgSchedulerStop   = "Scheduler stopped"
	MsgMinuteChanged   = "Minute changed, composing moment"
	MsgForceRefresh    = "Forced refresh requested"
	MsgNarrativeReady  = "Narrative ready"
	MsgNarrativeStale  = "Discarding stale narrative"
	MsgNarrativeFailed = "Narrator failed, using fallback"
	MsgChimesUpdated   = "Chime calendar regenerated"
	MsgSettingsSaved   = "Saving preferences"
	MsgReconfigure     = "Applying clock configuration"
	MsgTimezoneInvalid = "Invalid time zone preference, using default"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyStyle     = "style"
	LogKeyTimezone  = "timezone"
	LogKeyBackend   = "backend"
	LogKeyModel     = "model"
	LogKeyDelay     = "delay_ms"
	LogKeyPhrase    = "phrase"
	LogKeySeq       = "seq"
	LogKeyRoute     = "route"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyDuration  = "duration_ms"
	LogKeyDate      = "date"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompNarrator  = "narrator"
	CompScheduler = "scheduler"
	CompServer    = "server"
	CompMain      = "main"
	CompI18n      = "i18n"
)
