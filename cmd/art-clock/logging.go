package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/go-artclock/internal/config"
)

// setupLogging installs a JSON logger on stdout, mirrored into the app's cache
// dir when that is writable. The returned func closes the file sink.
func setupLogging(debug bool) (closeLog func()) {
	closeLog = func() {}
	out := io.Writer(os.Stdout)

	f, err := openLogFile("")
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, err)
	} else {
		out = io.MultiWriter(os.Stdout, f)
		closeLog = func() { _ = f.Close() }
	}

	slog.SetDefault(newLogger(out, debug))
	return closeLog
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// openLogFile truncates <base>/<app id>/app.log. An empty base means the user cache dir.
func openLogFile(base string) (*os.File, error) {
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrCacheDir, err)
		}
		base = dir
	}

	dir := filepath.Join(base, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	path := filepath.Join(dir, config.LogFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, config.FilePermUserRW)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLogFile, err)
	}
	return f, nil
}

// startupAttrs describes the build and host for the first log line.
func startupAttrs() []any {
	return []any{
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			config.LogKeyApp, config.AppName,
			config.LogKeyVersion, config.Version,
			config.LogKeyCommit, config.Commit,
			config.LogKeyBuilt, config.Date,
			config.LogKeyGoVer, runtime.Version(),
		),
		slog.Group(config.LogKeyEnv,
			config.LogKeyOS, runtime.GOOS,
			config.LogKeyArch, runtime.GOARCH,
			config.LogKeyPID, os.Getpid(),
		),
	}
}
