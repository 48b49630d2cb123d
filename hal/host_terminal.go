package hal

import (
	"context"
	"strings"

	"g13lcd/display"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunTerminal shows a virtual LCD in the terminal, two pixel rows per line,
// and runs fn against it until the user quits or fn returns.
func RunTerminal(ctx context.Context, fn Runner) error {
	ctx, cancel := context.WithCancel(ctx)
	dev := newVirtualDevice()
	errc := dev.run(ctx, fn)

	m := newTermModel(dev)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && (ctx.Err() != nil) {
		err = nil
	}
	if rerr := settle(cancel, errc); rerr != nil {
		return rerr
	}
	return err
}

type frameMsg struct{}

type stoppedMsg struct{}

// listenForFrames waits for the next frame written to dev.
func listenForFrames(dev *virtualDevice) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-dev.frames:
			return frameMsg{}
		case <-dev.done:
			return stoppedMsg{}
		}
	}
}

var (
	lcdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#101810")).
			Background(lipgloss.Color("#9cc86c")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var terminalKeys = map[string]Button{
	"esc":       ButtonDismiss,
	"backspace": ButtonDismiss,
	"0":         ButtonDismiss,
	"enter":     ButtonPrimary,
	" ":         ButtonPrimary,
	"1":         ButtonPrimary,
	"s":         ButtonSecondary,
	"2":         ButtonSecondary,
	"up":        ButtonPrevious,
	"left":      ButtonPrevious,
	"3":         ButtonPrevious,
	"down":      ButtonNext,
	"right":     ButtonNext,
	"4":         ButtonNext,
}

type termModel struct {
	dev    *virtualDevice
	screen string
}

func newTermModel(dev *virtualDevice) termModel {
	fb, _ := dev.snapshot()
	return termModel{dev: dev, screen: renderBlocks(fb)}
}

func (m termModel) Init() tea.Cmd {
	return listenForFrames(m.dev)
}

func (m termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if b, ok := terminalKeys[msg.String()]; ok {
			m.dev.Press(b)
		}

	case frameMsg:
		fb, _ := m.dev.snapshot()
		m.screen = renderBlocks(fb)
		return m, listenForFrames(m.dev)

	case stoppedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m termModel) View() string {
	return lcdStyle.Render(m.screen) + "\n" +
		helpStyle.Render("1/enter: L1  2/s: L2  3/↑: L3  4/↓: L4  0/esc: BD  q: quit")
}

// renderBlocks draws fb with half-block characters, two pixel rows per line.
func renderBlocks(fb *display.Framebuffer) string {
	var sb strings.Builder
	for y := 0; y < display.Height; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < display.Width; x++ {
			top := fb.Get(x, y)
			bottom := fb.Get(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
