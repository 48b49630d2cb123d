// Package mediatest provides an in-memory media.Transport for tests.
package mediatest

import (
	"context"
	"sync"

	"g13lcd/media"
)

// Transport serves a fixed set of Players.
type Transport struct {
	mu      sync.Mutex
	players []*Player

	// TargetsErr, when set, is returned by Targets.
	TargetsErr error
	// Discoveries counts Targets calls.
	Discoveries int
}

func NewTransport(players ...*Player) *Transport {
	return &Transport{players: players}
}

func (t *Transport) Targets(ctx context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Discoveries++
	if t.TargetsErr != nil {
		return nil, t.TargetsErr
	}
	names := make([]string, 0, len(t.players))
	for _, p := range t.players {
		names = append(names, p.name)
	}
	return names, nil
}

func (t *Transport) Open(ctx context.Context, name string) (media.Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.players {
		if p.name == name {
			p.mu.Lock()
			p.closed = false
			p.mu.Unlock()
			return p, nil
		}
	}
	return nil, &media.Error{Op: "open", Target: name, Err: media.ErrTargetNotFound}
}

// Player records the commands it receives.
type Player struct {
	name string

	mu       sync.Mutex
	song     media.Song
	commands []media.Command
	polls    int
	closed   bool
	doErr    error
	songErr  error
}

func NewPlayer(name string, song media.Song) *Player {
	return &Player{name: name, song: song}
}

func (p *Player) Name() string { return p.name }

func (p *Player) Do(ctx context.Context, cmd media.Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doErr != nil {
		return &media.Error{Op: "command", Target: p.name, Command: cmd, Err: p.doErr}
	}
	p.commands = append(p.commands, cmd)
	return nil
}

func (p *Player) NowPlaying(ctx context.Context) (media.Song, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.polls++
	if p.songErr != nil {
		return media.Song{}, &media.Error{Op: "now playing", Target: p.name, Err: p.songErr}
	}
	return p.song, nil
}

func (p *Player) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// SetSong changes what NowPlaying reports.
func (p *Player) SetSong(s media.Song) {
	p.mu.Lock()
	p.song = s
	p.mu.Unlock()
}

// Fail makes subsequent Do and NowPlaying calls fail with the given errors.
func (p *Player) Fail(doErr, songErr error) {
	p.mu.Lock()
	p.doErr, p.songErr = doErr, songErr
	p.mu.Unlock()
}

// Commands returns the commands received so far, in order.
func (p *Player) Commands() []media.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]media.Command(nil), p.commands...)
}

func (p *Player) Polls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.polls
}

func (p *Player) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
