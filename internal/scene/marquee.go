package scene

// Marquee defaults.
const (
	MarqueeStep   = 2
	MarqueeWidth  = 200
	MarqueeHeight = 30
	MarqueeText   = "Біжучий текст"
)

// Marquee is a label of fixed size scrolling right to left.
type Marquee struct {
	X, Y          float32
	Width, Height float32
	Text          string
}

// NewMarquee returns a label at the left edge of the surface.
func NewMarquee(text string) Marquee {
	if text == "" {
		text = MarqueeText
	}
	return Marquee{Width: MarqueeWidth, Height: MarqueeHeight, Text: text}
}

// StepMarquee moves the label left by MarqueeStep. Once its right edge has
// passed the left edge of the surface it re-enters at surfaceWidth.
func StepMarquee(m Marquee, surfaceWidth float32) Marquee {
	x := m.X - MarqueeStep
	if x+m.Width < 0 {
		x = surfaceWidth
	}
	m.X = x
	return m
}

// CenterMarquee places the label in the vertical middle of the surface.
func CenterMarquee(m Marquee, surfaceHeight float32) Marquee {
	m.Y = surfaceHeight/2 - m.Height/2
	return m
}
