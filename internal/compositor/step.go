package compositor

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/stemsprouts/renderer/internal/clip"
)

// StepCard composites one instruction card: a numbered circle badge near
// the top and the description word-wrapped to 80% of the canvas width.
func (c *Compositor) StepCard(description string, number int) *image.RGBA {
	w, h := float64(c.width), float64(c.height)
	dc := gg.NewContext(c.width, c.height)
	dc.ClearWithColor(gg.RGB(240.0/255, 248.0/255, 1.0))

	// Бейдж "Step N": круг по габаритам текста плюс отступ
	stepText := fmt.Sprintf("Step %d", number)
	dc.SetFont(c.face(h * stepTitleScale))
	tw, th := dc.MeasureString(stepText)

	cx := w / 2
	top := h * 0.1
	badgeSize := math.Max(tw, th) + badgePadding
	badgeCY := top + th/2

	dc.SetRGBA(100.0/255, 150.0/255, 1.0, 1)
	dc.DrawCircle(cx, badgeCY, badgeSize/2)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored(stepText, cx, badgeCY, 0.5, 0.5)

	// Описание: жадная разбивка по измеренной ширине строки
	dc.SetFont(c.face(h * bodyScale))
	measure := func(s string) float64 {
		lw, _ := dc.MeasureString(s)
		return lw
	}
	lines := Wrap(measure, description, w*0.8)

	dc.SetRGBA(50.0/255, 50.0/255, 50.0/255, 1)
	descY := top + badgeSize + 50
	for _, line := range lines {
		_, lh := dc.MeasureString(line)
		dc.DrawStringAnchored(line, cx, descY, 0.5, 0)
		descY += lh + 10
	}

	return clip.ToRGBA(dc.Image())
}
