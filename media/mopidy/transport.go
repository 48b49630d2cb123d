package mopidy

import (
	"context"
	"sync"
	"time"

	"g13lcd/media"

	"go.uber.org/zap"
)

// Transport exposes configured and discovered Mopidy servers as media targets.
type Transport struct {
	static      []Server
	browser     *Browser
	callTimeout time.Duration
	log         *zap.Logger

	mu    sync.Mutex
	known map[string]Server
}

// NewTransport serves the static servers plus whatever browser finds.
// A nil browser disables discovery.
func NewTransport(servers []Server, browser *Browser, callTimeout time.Duration, log *zap.Logger) *Transport {
	if log == nil {
		log = zap.NewNop()
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	t := &Transport{
		static:      append([]Server(nil), servers...),
		browser:     browser,
		callTimeout: callTimeout,
		log:         log,
		known:       make(map[string]Server),
	}
	for _, s := range servers {
		t.known[s.Name] = s
	}
	return t
}

func (t *Transport) Targets(ctx context.Context) ([]string, error) {
	servers := append([]Server(nil), t.static...)
	if t.browser != nil {
		found, err := t.browser.Browse(ctx)
		switch {
		case err != nil && len(servers) == 0:
			return nil, &media.Error{Op: "discover", Err: err}
		case err != nil:
			t.log.Warn("mDNS browse failed, using configured servers", zap.Error(err))
		default:
			t.log.Debug("mDNS browse finished", zap.Int("servers", len(found)))
		}
		servers = append(servers, found...)
	}
	servers = dedupe(servers)

	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(servers))
	for _, s := range servers {
		t.known[s.Name] = s
		names = append(names, s.Name)
	}
	return names, nil
}

func (t *Transport) lookup(name string) (Server, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.known[name]
	return s, ok
}

func (t *Transport) Open(ctx context.Context, name string) (media.Player, error) {
	s, ok := t.lookup(name)
	if !ok && t.browser != nil {
		if _, err := t.Targets(ctx); err != nil {
			return nil, &media.Error{Op: "open", Target: name, Err: err}
		}
		s, ok = t.lookup(name)
	}
	if !ok {
		return nil, &media.Error{Op: "open", Target: name, Err: media.ErrTargetNotFound}
	}

	client, err := Dial(ctx, s.URL(), t.callTimeout)
	if err != nil {
		return nil, &media.Error{Op: "open", Target: name, Err: err}
	}
	t.log.Info("Connected to media player", zap.String("player", name), zap.String("url", s.URL()))
	return NewPlayer(name, client), nil
}
