package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/go-artclock/internal/config"
)

// particle is one ambient circle for a given frame.
type particle struct {
	X, Y   float64
	Radius float64
	Color  color.Color
}

// particleAt places particle i at frame f on a width x height canvas.
// Particles drift right at a speed proportional to i+1, wrap 50px beyond
// both edges, bob on a sine around the upper third and pulse in size.
func particleAt(frame, i int, width, height, hueShift float64) particle {
	f := float64(frame)
	n := float64(i)

	x := math.Mod(f*(n+1)*config.ParticleDrift, width+2*config.ParticleMargin) - config.ParticleMargin
	y := height/3 + math.Sin((f+config.ParticlePhaseY*n)*config.ParticleWaveFreq)*config.ParticleWaveAmp
	r := config.ParticleBaseRadius + math.Sin((f+config.ParticlePhaseSize*n)*config.ParticlePulseFreq)
	hue := math.Mod(hueShift+config.ParticleHueStep*n, 1)

	return particle{
		X:      x,
		Y:      y,
		Radius: r,
		Color:  colorful.Hsv(hue*360, config.ParticleSaturation, config.ParticleValue),
	}
}

// advanceHue moves the palette one frame forward, wrapping past 1.
func advanceHue(shift float64) float64 {
	shift += config.HueShiftPerFrame
	if shift >= 1 {
		shift--
	}
	return shift
}

// ambientLayer owns the particle circles. It is only touched on the UI goroutine.
type ambientLayer struct {
	container *fyne.Container
	circles   []*canvas.Circle
	frame     int
	hueShift  float64
}

func newAmbientLayer() *ambientLayer {
	layer := &ambientLayer{container: container.NewWithoutLayout()}
	for i := 0; i < config.ParticleCount; i++ {
		c := canvas.NewCircle(color.Transparent)
		layer.circles = append(layer.circles, c)
		layer.container.Add(c)
	}
	return layer
}

// step renders the next frame for a canvas of the given size.
func (l *ambientLayer) step(size fyne.Size) {
	l.frame++
	l.hueShift = advanceHue(l.hueShift)

	w, h := float64(size.Width), float64(size.Height)
	for i, c := range l.circles {
		p := particleAt(l.frame, i, w, h, l.hueShift)
		c.FillColor = p.Color
		c.Move(fyne.NewPos(float32(p.X-p.Radius), float32(p.Y-p.Radius)))
		c.Resize(fyne.NewSquareSize(float32(2 * p.Radius)))
		c.Refresh()
	}
}
