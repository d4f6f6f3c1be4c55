package compositor

import (
	"fmt"
	"log"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/stemsprouts/renderer/internal/config"
)

// Palette constants shared by all scenes. Подобраны под фронтенд
// stem-sprouts-website, менять синхронно с ним.
const (
	shadowOffset   = 8.0  // drop-shadow offset, px
	glowRadius     = 20   // glow passes
	particleCount  = 50   // decorative dots on the intro
	badgePadding   = 40.0 // circle badge padding around "Step N"
	wipeBlurSigma  = 2.0  // motion blur on the wipe bar
	titleScale     = 0.10 // title font size as a fraction of height
	stepTitleScale = 0.08
	bodyScale      = 0.04
)

// Compositor draws one raster canvas per scene: intro title, step card,
// wipe-transition frame, or the closing QR card.
type Compositor struct {
	width  int
	height int
	fonts  *text.FontSource
}

// New builds a compositor for the given render settings. The configured
// TTF is used when present; otherwise the embedded Go Regular face keeps
// the service working in containers without system fonts.
func New(cfg config.RenderSettings) (*Compositor, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}

	var fonts *text.FontSource
	if cfg.FontPath != "" {
		src, err := text.NewFontSourceFromFile(cfg.FontPath)
		if err != nil {
			log.Printf("[!] Шрифт %s не загружен (%v), используется встроенный", cfg.FontPath, err)
		} else {
			fonts = src
		}
	}
	if fonts == nil {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("embedded font: %w", err)
		}
		fonts = src
	}

	return &Compositor{
		width:  cfg.Width,
		height: cfg.Height,
		fonts:  fonts,
	}, nil
}

// Width returns the canvas width in pixels.
func (c *Compositor) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Compositor) Height() int { return c.height }

func (c *Compositor) face(points float64) text.Face {
	return c.fonts.Face(points)
}
