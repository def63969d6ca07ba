package scene

// Defaults for the bouncing ball.
const (
	BallSize  = 50
	BallStart = 50
	BallSpeed = 2
)

// Bounds is the last known size of a drawing surface.
type Bounds struct {
	Width, Height float64
}

// Empty reports whether the surface has not been laid out yet.
func (b Bounds) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Ball is a circle of diameter Size at (X, Y) moving by (DX, DY) per step.
type Ball struct {
	X, Y   float64
	DX, DY float64
	Size   float64
}

// NewBall returns the ball at its starting position.
func NewBall() Ball {
	return Ball{X: BallStart, Y: BallStart, DX: BallSpeed, DY: BallSpeed, Size: BallSize}
}

// StepBall moves b by its velocity and, on each axis where the ball is now
// outside bounds and still heading outward, negates the velocity for the
// next step. An empty surface leaves the ball untouched.
func StepBall(b Ball, bounds Bounds) Ball {
	if bounds.Empty() {
		return b
	}
	b.X += b.DX
	b.Y += b.DY
	b.DX = bounce(b.X, b.DX, b.Size, bounds.Width)
	b.DY = bounce(b.Y, b.DY, b.Size, bounds.Height)
	return b
}

// InBounds reports whether the whole ball is inside bounds.
func (b Ball) InBounds(bounds Bounds) bool {
	return b.X >= 0 && b.Y >= 0 && b.X+b.Size <= bounds.Width && b.Y+b.Size <= bounds.Height
}

func bounce(pos, v, size, limit float64) float64 {
	if (pos < 0 && v < 0) || (pos+size > limit && v > 0) {
		return -v
	}
	return v
}
