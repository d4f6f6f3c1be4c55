package compositor

import (
	"fmt"
	"image"
	"image/draw"
	"math/rand"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/stemsprouts/renderer/internal/clip"
)

// Intro composites the cinematic title canvas: vertical gradient, the
// title drawn three ways (shadow, multi-pass glow, solid foreground) and
// a layer of blurred translucent particles.
func (c *Compositor) Intro(title string) (*image.RGBA, error) {
	w, h := float64(c.width), float64(c.height)
	dc := gg.NewContext(c.width, c.height)

	// Вертикальный градиент (20,40,80) -> (80,120,200)
	grad := gg.NewLinearGradientBrush(0, 0, 0, h).
		AddColorStop(0, gg.RGB(20.0/255, 40.0/255, 80.0/255)).
		AddColorStop(1, gg.RGB(80.0/255, 120.0/255, 200.0/255))
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("gradient fill: %w", err)
	}

	titleSize := h * titleScale
	cx, cy := w/2, h/2

	// Тень
	dc.SetFont(c.face(titleSize))
	dc.SetRGBA(0, 0, 0, 180.0/255)
	dc.DrawStringAnchored(title, cx+shadowOffset, cy+shadowOffset, 0.5, 0.5)

	// Свечение: прозрачность падает, кегль растёт
	for i := 0; i < glowRadius; i++ {
		alpha := float64(100-i*100/glowRadius) / 255
		dc.SetFont(c.face(titleSize + float64(i)))
		dc.SetRGBA(100.0/255, 150.0/255, 1.0, alpha)
		dc.DrawStringAnchored(title, cx-float64(i)/2, cy-float64(i)/2, 0.5, 0.5)
	}

	// Основной текст
	dc.SetFont(c.face(titleSize))
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored(title, cx, cy, 0.5, 0.5)

	canvas := clip.ToRGBA(dc.Image())
	c.addParticles(canvas)
	return canvas, nil
}

// FallbackIntro is the minimal recovery canvas: solid fill plus plain
// centered text. It must not be able to fail.
func (c *Compositor) FallbackIntro(title string) *image.RGBA {
	dc := gg.NewContext(c.width, c.height)
	dc.ClearWithColor(gg.RGB(100.0/255, 150.0/255, 1.0))

	dc.SetFont(c.face(float64(c.height) * titleScale))
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored(title, float64(c.width)/2, float64(c.height)/2, 0.5, 0.5)

	return clip.ToRGBA(dc.Image())
}

// addParticles scatters blurred translucent dots over the canvas.
func (c *Compositor) addParticles(canvas *image.RGBA) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for n := 0; n < particleCount; n++ {
		x := r.Intn(c.width)
		y := r.Intn(c.height)
		size := 2 + r.Intn(4)
		alpha := 30 + r.Intn(70)

		p := gg.NewContext(size*2, size*2)
		p.SetRGBA(1, 1, 1, float64(alpha)/255)
		p.DrawEllipse(float64(size), float64(size), float64(size), float64(size))
		p.Fill()

		// Размытие даёт эффект свечения точки
		blurred := imaging.Blur(p.Image(), 1.0)
		target := image.Rect(x-size, y-size, x+size, y+size)
		draw.Draw(canvas, target, blurred, image.Point{}, draw.Over)
	}
}
