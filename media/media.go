// Package media describes the remote playback targets the music applications
// control: discovery of named targets, transport commands, and the track that
// is currently playing.
package media

import (
	"context"
	"strings"
)

// Command is a transport action issued to a Player.
type Command uint8

const (
	PlayPause Command = iota
	Stop
	Previous
	Next
)

func (c Command) String() string {
	switch c {
	case PlayPause:
		return "play/pause"
	case Stop:
		return "stop"
	case Previous:
		return "previous"
	case Next:
		return "next"
	default:
		return "unknown"
	}
}

// Transport finds and opens playback targets.
//
// Calls are not cancellable once issued; callers pass a context detached from
// any render cancellation and rely on the implementation's own timeouts.
type Transport interface {
	// Targets lists the names of the targets currently reachable.
	Targets(ctx context.Context) ([]string, error)
	// Open resolves a target by name. ErrTargetNotFound reports a name that is
	// no longer reachable.
	Open(ctx context.Context, name string) (Player, error)
}

// Player is an opened playback target.
type Player interface {
	Name() string
	Do(ctx context.Context, cmd Command) error
	NowPlaying(ctx context.Context) (Song, error)
	Close() error
}

// Unknown stands in for a missing title or artist.
const Unknown = "Unknown"

// Song is the part of a track shown on the player screen.
type Song struct {
	Title  string
	Artist string
}

// NewSong builds a Song from raw metadata, cleaning up artist names the way
// streaming services publish them.
func NewSong(title string, artists []string) Song {
	s := Song{Title: strings.TrimSpace(title), Artist: FormatArtists(artists)}
	if s.Title == "" {
		s.Title = Unknown
	}
	return s
}

// FormatArtists joins artist names with " & " after dropping channel suffixes
// such as " - Topic" and "VEVO". An empty list yields Unknown.
func FormatArtists(artists []string) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		a = strings.ReplaceAll(a, " - Topic", "")
		a = strings.ReplaceAll(a, "VEVO", "")
		a = strings.ReplaceAll(a, "; ", " & ")
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	if len(names) == 0 {
		return Unknown
	}
	return strings.Join(names, " & ")
}
