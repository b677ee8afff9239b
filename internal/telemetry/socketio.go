package telemetry

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/specialistvlad/jumpgridgo/internal/ctxlog"
	"github.com/specialistvlad/jumpgridgo/internal/engine"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted to the socket.io server.
const (
	TickEvent  = "tick"
	AgentEvent = "agent"
)

// SocketIOOptions configures the publisher.
type SocketIOOptions struct {
	URL       string
	Namespace string
	// Every keeps one snapshot in every; roster events are always sent.
	Every              int
	InsecureSkipVerify bool
}

// SocketIO publishes snapshots to a socket.io server.
type SocketIO struct {
	emit       func(event string, args ...any)
	disconnect func()
	every      int
	connected  atomic.Bool
	logger     *slog.Logger
}

// DialSocketIO starts connecting to the server and returns at once. Frames
// observed before the connection is up are dropped.
func DialSocketIO(ctx context.Context, opts SocketIOOptions) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("component", "telemetry", "url", opts.URL, "namespace", opts.Namespace)

	parsed, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse telemetry URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("telemetry URL must be absolute, got %q", opts.URL)
	}
	ns := opts.Namespace
	if ns == "" {
		ns = "/"
	}

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	sopts := socket.DefaultOptions()
	if parsed.Path != "" {
		sopts.SetPath(parsed.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(ns, sopts)

	p := &SocketIO{
		emit:       func(event string, args ...any) { io.Emit(event, args...) },
		disconnect: func() { io.Disconnect() },
		every:      max(opts.Every, 1),
		logger:     logger,
	}

	io.On(types.EventName("connect"), func(...any) {
		p.connected.Store(true)
		logger.Info("Telemetry connected.", "sid", io.Id())
	})
	io.On(types.EventName("disconnect"), func(...any) {
		p.connected.Store(false)
		logger.Info("Telemetry disconnected.")
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Telemetry connection failed.", "error", fmt.Sprint(errs...))
	})

	io.Connect()
	return p, nil
}

// Connected reports whether the socket is up.
func (p *SocketIO) Connected() bool { return p.connected.Load() }

// Observe emits the snapshot and its roster events while connected.
func (p *SocketIO) Observe(_ context.Context, snap *engine.Snapshot) error {
	if !p.connected.Load() {
		return nil
	}
	for _, e := range snap.Events {
		p.emit(AgentEvent, e)
	}
	if snap.Tick%p.every == 0 {
		p.emit(TickEvent, snap)
	}
	return nil
}

// Close disconnects from the server.
func (p *SocketIO) Close() error {
	p.logger.Debug("Disconnecting telemetry socket.")
	p.disconnect()
	return nil
}

var _ engine.Observer = (*SocketIO)(nil)
