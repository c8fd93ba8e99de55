// Package steer moves the carving head toward its waypoint and keeps the
// recent path for the rail renderer.
package steer

import (
	"math"

	"github.com/san-kum/gleam/internal/dynamo"
)

const (
	DefaultSpeed       = 620.0 // px/s
	DefaultSteerPerSec = 3.0
)

// Controller is a constant-speed seek: only the heading is smoothed, the
// speed is reapplied after every step.
type Controller struct {
	Speed       float64
	SteerPerSec float64
}

func NewController(speed, steerPerSec float64) *Controller {
	return &Controller{Speed: speed, SteerPerSec: steerPerSec}
}

// Blend returns the fraction of the way the heading turns toward the target
// over dt. It depends on dt through a time constant, so two steps of dt/2
// turn as far as one step of dt.
func (c *Controller) Blend(dt float64) float64 {
	return 1 - math.Exp(-c.SteerPerSec*dt)
}

// Step advances head by one frame and returns the new head and velocity.
func (c *Controller) Step(head, vel, target dynamo.Vec2, dt float64) (dynamo.Vec2, dynamo.Vec2) {
	desired := target.Sub(head).Unit()
	current := vel.Unit()

	a := c.Blend(dt)
	dir := current.Add(desired.Sub(current).Scale(a)).Unit()

	v := dir.Scale(c.Speed)
	return head.Add(v.Scale(dt)), v
}

// ClampCarve keeps the head inside the soft carve bounds. The x range
// reaches past both edges so runs can enter from the left and leave right.
func ClampCarve(head dynamo.Vec2, w, h float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: dynamo.Clamp(head.X, -w*0.4, w*1.1),
		Y: dynamo.Clamp(head.Y, h*0.1, h*0.9),
	}
}
