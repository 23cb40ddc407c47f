package animation

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
)

// Blend mixes two hex colours, t=0 giving from and t=1 giving to. Colours
// that fail to parse are returned unchanged.
func Blend(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendRgb(b, clamp01(t)).Clamped().Hex()
}

// FrameMsg asks animated models to advance one frame.
type FrameMsg struct {
	Time time.Time
}

func Tick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}
