package clip

import (
	"image"
	"image/draw"
)

// Clip is an ordered frame sequence with a fixed playback rate. A clip
// represents one timed visual unit: intro, transition, step card, or a
// full assembled timeline.
type Clip struct {
	Frames []*image.RGBA
	FPS    int
}

// Duration returns the playback duration of the clip in seconds.
func (c Clip) Duration() float64 {
	if c.FPS == 0 {
		return 0
	}
	return float64(len(c.Frames)) / float64(c.FPS)
}

// FrameCount converts a duration into a frame count at the given rate.
// Дробный остаток времени отбрасывается (int(d*fps), как и раньше).
func FrameCount(duration float64, fps int) int {
	n := int(duration * float64(fps))
	if n < 0 {
		return 0
	}
	return n
}

// Concat joins clips into one continuous timeline. Order is preserved;
// this is the only structural operation defined on frame sequences.
// Frames are shared, not copied.
func Concat(clips ...Clip) Clip {
	out := Clip{}
	for _, c := range clips {
		if out.FPS == 0 {
			out.FPS = c.FPS
		}
		out.Frames = append(out.Frames, c.Frames...)
	}
	return out
}

// ToRGBA returns img as *image.RGBA with a zero origin and a standard
// stride, copying only when the layout does not already match. Это тот же
// формат, что уходит в ffmpeg как rawvideo rgba.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return rgba
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
