package mopidy

import (
	"context"

	"g13lcd/media"
)

// Playback states reported by core.playback.get_state.
const (
	statePlaying = "playing"
	statePaused  = "paused"
	stateStopped = "stopped"
)

type artist struct {
	Name string `json:"name"`
}

type track struct {
	Name    string   `json:"name"`
	Artists []artist `json:"artists"`
}

// Player drives one Mopidy server.
type Player struct {
	name   string
	client *Client
}

func NewPlayer(name string, client *Client) *Player {
	return &Player{name: name, client: client}
}

func (p *Player) Name() string { return p.name }

func (p *Player) Do(ctx context.Context, cmd media.Command) error {
	var err error
	switch cmd {
	case media.PlayPause:
		err = p.toggle(ctx)
	case media.Stop:
		err = p.client.Call(ctx, "core.playback.stop", nil, nil)
	case media.Previous:
		err = p.client.Call(ctx, "core.playback.previous", nil, nil)
	case media.Next:
		err = p.client.Call(ctx, "core.playback.next", nil, nil)
	}
	if err != nil {
		return &media.Error{Op: "command", Target: p.name, Command: cmd, Err: err}
	}
	return nil
}

func (p *Player) toggle(ctx context.Context) error {
	var state string
	if err := p.client.Call(ctx, "core.playback.get_state", nil, &state); err != nil {
		return err
	}
	switch state {
	case statePlaying:
		return p.client.Call(ctx, "core.playback.pause", nil, nil)
	case statePaused:
		return p.client.Call(ctx, "core.playback.resume", nil, nil)
	default:
		return p.client.Call(ctx, "core.playback.play", nil, nil)
	}
}

func (p *Player) NowPlaying(ctx context.Context) (media.Song, error) {
	var t *track
	if err := p.client.Call(ctx, "core.playback.get_current_track", nil, &t); err != nil {
		return media.Song{}, &media.Error{Op: "now playing", Target: p.name, Err: err}
	}
	if t == nil {
		return media.NewSong("", nil), nil
	}
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return media.NewSong(t.Name, names), nil
}

func (p *Player) Close() error { return p.client.Close() }
