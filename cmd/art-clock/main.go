package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-artclock/internal/config"
	"github.com/tartampluch/go-artclock/internal/server"
	"github.com/tartampluch/go-artclock/internal/ui"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain executes the command tree under a context cancelled by SIGINT/SIGTERM.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// runGUI initializes logging and the Fyne application, then blocks in the UI loop.
func runGUI(ctx context.Context, debugMode bool) error {
	closeLog := setupLogging(debugMode)
	defer closeLog()

	slog.Info(config.MsgAppStarting, startupAttrs()...)

	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewMomentServer(port)

	gui := ui.NewArtClockApp(a, ctx, srv)

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// versionLine is the --version output.
func versionLine() string {
	return fmt.Sprintf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}
