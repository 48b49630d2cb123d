package apps

import (
	"context"
	"io"
	"time"

	"g13lcd/display"
	"g13lcd/media"
	"g13lcd/ui"

	"go.uber.org/zap"
	"tinygo.org/x/tinydraw"
)

const songLineWidth = 26

// MusicPlayer shows the track playing on one media player and forwards
// transport commands to it.
type MusicPlayer struct {
	env      *Env
	name     string
	player   media.Player
	commands []media.Command
	end      bool
}

// NewMusicPlayer controls the player called name.
func NewMusicPlayer(env *Env, name string) *MusicPlayer {
	return &MusicPlayer{env: env, name: name}
}

func (p *MusicPlayer) Kind() Kind { return KindMusicPlayer }

// Target returns the name of the controlled player.
func (p *MusicPlayer) Target() string { return p.name }

func (p *MusicPlayer) Render(ctx context.Context, out io.Writer) (Application, error) {
	if p.end {
		p.close()
		return NewMenu(p.env), nil
	}

	call := context.WithoutCancel(ctx)
	if p.player == nil {
		if p.env.Media == nil {
			return nil, &media.Error{Op: "open", Target: p.name, Err: media.ErrTargetNotFound}
		}
		pl, err := p.env.Media.Open(call, p.name)
		if err != nil {
			return nil, err
		}
		p.player = pl
	}

	fb := display.New(out)
	playerChrome().Draw(fb)

	t := time.NewTicker(p.env.Ticks.of(KindMusicPlayer))
	defer t.Stop()

	var shown *media.Song
	for !p.end {
		for len(p.commands) > 0 {
			cmd := p.commands[0]
			p.commands = p.commands[1:]
			if err := p.player.Do(call, cmd); err != nil {
				p.close()
				return nil, err
			}
			p.env.logger().Debug("Media command sent", zap.String("player", p.player.Name()), zap.Stringer("command", cmd))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		song, err := p.player.NowPlaying(call)
		if err != nil {
			p.close()
			return nil, err
		}
		if shown == nil || song != *shown {
			drawSong(fb, song)
			if err := present(ctx, fb); err != nil {
				return nil, err
			}
			shown = &song
		}

		if err := wait(ctx, t); err != nil {
			return nil, err
		}
	}

	p.close()
	return NewMenu(p.env), nil
}

func drawSong(fb *display.Framebuffer, song media.Song) {
	_ = tinydraw.FilledRectangle(fb, 0, 10, display.Width, 25, display.Off)
	ui.TextRegular.Draw(fb, 0, 10, ui.Fit(song.Title, songLineWidth))
	ui.TextSmall.Draw(fb, 0, 20, "by")
	ui.TextRegular.Draw(fb, 16, 18, ui.Fit(song.Artist, songLineWidth-3))
}

func (p *MusicPlayer) close() {
	if p.player == nil {
		return
	}
	if err := p.player.Close(); err != nil {
		p.env.logger().Warn("Failed to close media player", zap.String("player", p.name), zap.Error(err))
	}
	p.player = nil
}

func (p *MusicPlayer) enqueue(cmd media.Command) error {
	p.commands = append(p.commands, cmd)
	return nil
}

func (p *MusicPlayer) Primary() error   { return p.enqueue(media.PlayPause) }
func (p *MusicPlayer) Secondary() error { return p.enqueue(media.Stop) }
func (p *MusicPlayer) Previous() error  { return p.enqueue(media.Previous) }
func (p *MusicPlayer) Next() error      { return p.enqueue(media.Next) }

func (p *MusicPlayer) Dismiss() error {
	p.end = true
	return nil
}
