package compositor

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/stemsprouts/renderer/internal/clip"
)

// Outro composites the closing card: the same gradient family as the
// intro, a call-to-action line and a QR code pointing at the activity
// page. Скрипты без activity_url эту сцену не получают.
func (c *Compositor) Outro(activityURL string) (*image.RGBA, error) {
	qr, err := qrcode.New(activityURL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	w, h := float64(c.width), float64(c.height)
	dc := gg.NewContext(c.width, c.height)

	grad := gg.NewLinearGradientBrush(0, 0, 0, h).
		AddColorStop(0, gg.RGB(20.0/255, 40.0/255, 80.0/255)).
		AddColorStop(1, gg.RGB(80.0/255, 120.0/255, 200.0/255))
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("gradient fill: %w", err)
	}

	dc.SetFont(c.face(h * stepTitleScale))
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored("Try it at home!", w/2, h*0.2, 0.5, 0.5)

	dc.SetFont(c.face(h * bodyScale * 0.75))
	dc.SetRGBA(200.0/255, 220.0/255, 1.0, 1)
	dc.DrawStringAnchored(activityURL, w/2, h*0.9, 0.5, 0.5)

	canvas := clip.ToRGBA(dc.Image())

	// QR поверх градиента, по центру
	qrSize := int(h * 0.45)
	qrImg := qr.Image(qrSize)
	x := (c.width - qrSize) / 2
	y := int(h * 0.32)
	draw.Draw(canvas, image.Rect(x, y, x+qrSize, y+qrSize), qrImg, qrImg.Bounds().Min, draw.Over)

	return canvas, nil
}
