// Package physics provides the arcade motion model: velocity integration,
// world-bound reflection and axis-aligned overlap tests.
package physics

// Bounds is an axis-aligned world rectangle.
type Bounds struct {
	Width, Height float64
}

// Integrate advances a position by one step of semi-implicit Euler:
// gravity is applied to the vertical velocity before the position moves.
func Integrate(x, y, vx, vy *float64, gravity, dt float64) {
	*vy += gravity * dt
	*x += *vx * dt
	*y += *vy * dt
}

// Reflect keeps a body of the given size inside the bounds. A velocity
// component pointing out of the world is negated and scaled by bounce
// (1 keeps all energy, 0 stops the body at the wall).
func (b Bounds) Reflect(x, y, vx, vy *float64, size, bounce float64) {
	half := size / 2
	minX, maxX := half, b.Width-half
	minY, maxY := half, b.Height-half

	if *x < minX {
		*x = minX
		if *vx < 0 {
			*vx = -*vx * bounce
		}
	} else if *x > maxX {
		*x = maxX
		if *vx > 0 {
			*vx = -*vx * bounce
		}
	}

	if *y < minY {
		*y = minY
		if *vy < 0 {
			*vy = -*vy * bounce
		}
	} else if *y > maxY {
		*y = maxY
		if *vy > 0 {
			*vy = -*vy * bounce
		}
	}
}

// ClampX keeps a body of the given width horizontally inside the bounds.
// Returns true if the body touched a wall.
func (b Bounds) ClampX(x *float64, size float64) bool {
	half := size / 2
	if *x < half {
		*x = half
		return true
	}
	if *x > b.Width-half {
		*x = b.Width - half
		return true
	}
	return false
}

// BoxesOverlap reports whether two square bodies centred at (x1,y1) and
// (x2,y2) with edge lengths s1 and s2 intersect. Touching edges do not count.
func BoxesOverlap(x1, y1, s1, x2, y2, s2 float64) bool {
	reach := (s1 + s2) / 2
	return abs(x1-x2) < reach && abs(y1-y2) < reach
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
