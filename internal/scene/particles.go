// Package scene holds CPU-bound reference stages.
package scene

import (
	"math"
	"math/rand"
	"time"
)

// Particle is one unit of work: a bouncing disc with a spinning sprite.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Angle    float64
	Spin     float64
	Radius   float64
	Segments int // Outline vertices computed per frame
}

// Particles integrates a box of bouncing particles. Complexity is the
// particle count.
type Particles struct {
	Width, Height float64
	Gravity       float64

	rng   *rand.Rand
	items []Particle
	sink  float64 // accumulates outline work so it is not optimized away
}

// NewParticles returns an empty stage of the given size.
func NewParticles(width, height float64, seed int64) *Particles {
	return &Particles{
		Width:   width,
		Height:  height,
		Gravity: 300,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Tune adds or removes particles. Removal drops the newest first.
func (p *Particles) Tune(delta int) {
	switch {
	case delta > 0:
		for i := 0; i < delta; i++ {
			p.items = append(p.items, p.spawn())
		}
	case delta < 0:
		keep := max(0, len(p.items)+delta)
		p.items = p.items[:keep]
	}
}

func (p *Particles) spawn() Particle {
	return Particle{
		X:        p.rng.Float64() * p.Width,
		Y:        p.rng.Float64() * p.Height,
		VX:       (p.rng.Float64()*2 - 1) * 200,
		VY:       (p.rng.Float64()*2 - 1) * 200,
		Spin:     (p.rng.Float64()*2 - 1) * math.Pi,
		Radius:   4 + p.rng.Float64()*12,
		Segments: 24 + p.rng.Intn(24),
	}
}

// Animate advances every particle by the last frame length so motion
// speed does not depend on the frame rate.
func (p *Particles) Animate(elapsed, lastFrameLength time.Duration) {
	dt := lastFrameLength.Seconds()
	if dt <= 0 {
		dt = 1.0 / 60
	}

	for i := range p.items {
		it := &p.items[i]
		it.VY += p.Gravity * dt
		it.X += it.VX * dt
		it.Y += it.VY * dt
		it.Angle += it.Spin * dt

		if it.X < it.Radius || it.X > p.Width-it.Radius {
			it.VX = -it.VX
			it.X = math.Min(math.Max(it.X, it.Radius), p.Width-it.Radius)
		}
		if it.Y > p.Height-it.Radius {
			it.VY = -math.Abs(it.VY) * 0.9
			it.Y = p.Height - it.Radius
		}

		// Outline tessellation stands in for drawing cost.
		step := 2 * math.Pi / float64(it.Segments)
		for s := 0; s < it.Segments; s++ {
			a := it.Angle + float64(s)*step
			p.sink += it.X + it.Radius*math.Cos(a) + it.Y + it.Radius*math.Sin(a)
		}
	}
}

// Complexity returns the particle count.
func (p *Particles) Complexity() int {
	return len(p.items)
}

// Items returns a copy of the particles.
func (p *Particles) Items() []Particle {
	out := make([]Particle, len(p.items))
	copy(out, p.items)
	return out
}
