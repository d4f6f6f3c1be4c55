package compositor

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/stemsprouts/renderer/internal/clip"
)

// TransitionFrame composites one frame of the wipe transition at
// progress ∈ [0,1): a translucent bar whose right edge advances linearly
// across the canvas, blurred to fake motion.
func (c *Compositor) TransitionFrame(progress float64) *image.RGBA {
	w, h := float64(c.width), float64(c.height)
	dc := gg.NewContext(c.width, c.height)

	dc.SetRGBA(100.0/255, 150.0/255, 1.0, 100.0/255)
	dc.DrawRectangle(0, 0, w*progress, h)
	dc.Fill()

	blurred := imaging.Blur(dc.Image(), wipeBlurSigma)
	return clip.ToRGBA(blurred)
}
