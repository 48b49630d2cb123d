package apps

import (
	"context"
	"fmt"
	"io"
	"time"

	"g13lcd/display"
	"g13lcd/media"
	"g13lcd/ui"

	"go.uber.org/zap"
)

// MusicSelector lists the reachable media players.
type MusicSelector struct {
	env        *Env
	list       *ui.List
	end        bool
	returnMenu bool
}

func NewMusicSelector(env *Env) *MusicSelector { return &MusicSelector{env: env} }

func (s *MusicSelector) Kind() Kind { return KindMusic }

func (s *MusicSelector) Render(ctx context.Context, out io.Writer) (Application, error) {
	if s.end && s.returnMenu {
		return NewMenu(s.env), nil
	}
	if s.list == nil {
		if err := s.init(context.WithoutCancel(ctx)); err != nil {
			return nil, err
		}
	}

	fb := display.New(out)
	selectorChrome().Draw(fb)

	t := time.NewTicker(s.env.Ticks.of(KindMusic))
	defer t.Stop()

	drawn := -1
	for !s.end {
		if c := s.list.Cursor(); c != drawn {
			s.list.DrawDefault(fb)
			if err := present(ctx, fb); err != nil {
				return nil, err
			}
			drawn = c
		}
		if err := wait(ctx, t); err != nil {
			return nil, err
		}
	}

	if s.returnMenu {
		return NewMenu(s.env), nil
	}
	return NewMusicPlayer(s.env, s.list.Current()), nil
}

// init discovers the players once; the list survives re-renders.
func (s *MusicSelector) init(ctx context.Context) error {
	if s.env.Media == nil {
		return &media.Error{Op: "discover", Err: media.ErrNoTargets}
	}
	names, err := s.env.Media.Targets(ctx)
	if err != nil {
		return fmt.Errorf("music: %w", err)
	}
	if len(names) == 0 {
		return &media.Error{Op: "discover", Err: media.ErrNoTargets}
	}
	s.env.logger().Info("Media players found", zap.Strings("players", names))
	s.list, err = ui.NewList(names)
	return err
}

func (s *MusicSelector) Primary() error {
	if s.list == nil {
		return ErrUninitialized
	}
	s.end = true
	return nil
}

func (s *MusicSelector) Secondary() error { return nil }

func (s *MusicSelector) Previous() error {
	if s.list == nil {
		return ErrUninitialized
	}
	s.list.Previous()
	return nil
}

func (s *MusicSelector) Next() error {
	if s.list == nil {
		return ErrUninitialized
	}
	s.list.Next()
	return nil
}

func (s *MusicSelector) Dismiss() error {
	s.end = true
	s.returnMenu = true
	return nil
}
