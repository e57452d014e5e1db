package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-artclock/internal/config"
)

// snapshot is one published body with its validators.
type snapshot struct {
	data     []byte
	etag     string
	modified time.Time
}

// route is a lock-free slot: the clock writes once a minute, clients read at will.
type route struct {
	name    string
	mime    string
	current atomic.Pointer[snapshot]
}

// MomentServer mirrors the current moment and the chime calendar over HTTP on localhost.
type MomentServer struct {
	Port string

	moment route
	chimes route
}

// NewMomentServer creates a server for port. Nothing listens until Start.
func NewMomentServer(port string) *MomentServer {
	return &MomentServer{
		Port:   port,
		moment: route{name: config.RouteRoot, mime: config.MimeTextPlain},
		chimes: route{name: config.RouteChimes, mime: config.MimeTextCalendar},
	}
}

// Handler returns the route multiplexer.
func (s *MomentServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(config.RouteRootExact, &s.moment)
	mux.Handle(config.RouteChimes, &s.chimes)
	return mux
}

// Start binds the port, then serves until ctx is cancelled.
// A busy port is reported immediately.
func (s *MomentServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	ln, err := net.Listen(config.NetworkTCP, net.JoinHostPort(config.LocalhostBindAddr, s.Port))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	slog.Info(config.MsgServerListen,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPort, s.Port,
		config.LogKeyURL, ln.Addr().String(),
	)

	served := make(chan error, config.ChannelBufferSize)
	go func() {
		served <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-served:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateMoment replaces the narrative served at the root route.
func (s *MomentServer) UpdateMoment(text string) {
	s.moment.publish([]byte(text))
}

// UpdateChimes replaces the iCalendar served at the chimes route.
func (s *MomentServer) UpdateChimes(ics []byte) {
	s.chimes.publish(ics)
}

func (rt *route) publish(data []byte) {
	sum := sha256.Sum256(data)
	snap := &snapshot{
		data:     data,
		etag:     fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:])),
		modified: time.Now().UTC(),
	}
	rt.current.Store(snap)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, rt.name,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, snap.etag,
	)
}

// ServeHTTP answers GET and HEAD from the current snapshot. Conditional
// requests (If-None-Match, If-Modified-Since) are resolved by http.ServeContent.
func (rt *route) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	snap := rt.current.Load()
	if snap == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, rt.mime)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, snap.etag)

	http.ServeContent(w, r, rt.name, snap.modified, bytes.NewReader(snap.data))
}
