package animation

const hiddenScale = 0.8

// Panel animates a floating panel between its shown state (x 0, scale 1,
// opacity 1) and its hidden state (x offset, scale 0.8, opacity 0).
type Panel struct {
	X       Spring
	Scale   Spring
	Opacity Spring

	offset float64
	shown  bool
}

// NewPanel returns a hidden panel that slides in from offset columns away.
func NewPanel(fps int, cfg SpringConfig, offset float64) *Panel {
	return &Panel{
		X:       NewSpring(fps, cfg, offset),
		Scale:   NewSpring(fps, cfg, hiddenScale),
		Opacity: NewSpring(fps, cfg, 0),
		offset:  offset,
	}
}

func (p *Panel) Show() {
	p.shown = true
	p.X.SetTarget(0)
	p.Scale.SetTarget(1)
	p.Opacity.SetTarget(1)
}

func (p *Panel) Hide() {
	p.shown = false
	p.X.SetTarget(p.offset)
	p.Scale.SetTarget(hiddenScale)
	p.Opacity.SetTarget(0)
}

func (p *Panel) Shown() bool {
	return p.shown
}

// Visible reports whether anything of the panel is on screen, including
// while it is fading out.
func (p *Panel) Visible() bool {
	return p.shown || !p.Settled()
}

func (p *Panel) Step() {
	p.X.Step()
	p.Scale.Step()
	p.Opacity.Step()
}

func (p *Panel) Settled() bool {
	return p.X.Settled() && p.Scale.Settled() && p.Opacity.Settled()
}

func (p *Panel) Snap() {
	p.X.Snap()
	p.Scale.Snap()
	p.Opacity.Snap()
}

// Offset returns the current horizontal displacement in whole columns.
func (p *Panel) Offset() int {
	x := p.X.Position
	if x < 0 {
		x = 0
	}
	return int(x + 0.5)
}

// Alpha is the current opacity clamped to [0, 1].
func (p *Panel) Alpha() float64 {
	return clamp01(p.Opacity.Position)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
