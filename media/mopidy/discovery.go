package mopidy

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is advertised by Mopidy-HTTP when zeroconf is enabled.
	ServiceType = "_mopidy-http._tcp"

	ServiceDomain = "local."

	DefaultBrowseTimeout = 2 * time.Second

	// DefaultPort is Mopidy-HTTP's default listening port.
	DefaultPort = 6680
)

// Server is a reachable Mopidy-HTTP endpoint.
type Server struct {
	Name string
	Host string
	Port int
}

// URL returns the JSON-RPC websocket endpoint of s.
func (s Server) URL() string {
	port := s.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("ws://%s/mopidy/ws", net.JoinHostPort(s.Host, strconv.Itoa(port)))
}

// Browser finds Mopidy servers with mDNS.
type Browser struct {
	// Timeout is how long one browse listens for answers.
	Timeout time.Duration
}

func NewBrowser() *Browser {
	return &Browser{Timeout: DefaultBrowseTimeout}
}

// Browse listens for Mopidy announcements until the timeout elapses.
func (b *Browser) Browse(ctx context.Context) ([]Server, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu    sync.Mutex
		found []Server
		done  = make(chan struct{})
	)
	go func() {
		defer close(done)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if s, ok := parseServiceEntry(entry); ok {
					mu.Lock()
					found = append(found, s)
					mu.Unlock()
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	mu.Lock()
	defer mu.Unlock()
	return dedupe(found), nil
}

// parseServiceEntry converts an announcement into a Server.
// Entries without a usable address are skipped.
func parseServiceEntry(entry *zeroconf.ServiceEntry) (Server, bool) {
	if entry == nil {
		return Server{}, false
	}

	var host string
	if len(entry.AddrIPv4) > 0 {
		host = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		host = entry.AddrIPv6[0].String()
	} else {
		host = strings.TrimSuffix(entry.HostName, ".")
	}
	if host == "" {
		return Server{}, false
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	name := unescapeInstance(entry.Instance)
	if name == "" {
		name = strings.TrimSuffix(entry.HostName, ".")
	}
	if name == "" {
		name = host
	}
	return Server{Name: name, Host: host, Port: port}, true
}

// unescapeInstance undoes DNS-SD escaping of instance names ("Mopidy\ on\ pi").
func unescapeInstance(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}

// dedupe keeps the first server announced under each name.
func dedupe(servers []Server) []Server {
	seen := make(map[string]bool, len(servers))
	out := servers[:0]
	for _, s := range servers {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	return out
}
