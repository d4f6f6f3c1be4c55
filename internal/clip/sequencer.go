package clip

import "image"

// Sequencer turns composited canvases into frame sequences of a fixed
// playback rate.
type Sequencer struct {
	FPS int
}

// Still replicates one canvas into int(duration*fps) identical frames.
// Step cards use this: no per-frame animation.
func (s Sequencer) Still(canvas *image.RGBA, duration float64) Clip {
	total := FrameCount(duration, s.FPS)
	frames := make([]*image.RGBA, 0, total)
	for i := 0; i < total; i++ {
		frames = append(frames, canvas)
	}
	return Clip{Frames: frames, FPS: s.FPS}
}

// Intro replicates the canvas with a one-second opacity ramp at each end:
// 0→255 over the first second, 255→0 over the last. Для интро короче двух
// секунд окна перекрываются — в зоне перекрытия побеждает fade-out.
func (s Sequencer) Intro(canvas *image.RGBA, duration float64) Clip {
	fps := float64(s.FPS)
	total := FrameCount(duration, s.FPS)
	frames := make([]*image.RGBA, 0, total)

	for i := 0; i < total; i++ {
		frame := cloneRGBA(canvas)
		switch {
		case float64(i) > (duration-1)*fps:
			// fade out
			alpha := int(255 * (duration*fps - float64(i)) / fps)
			applyOpacity(frame, clampAlpha(alpha))
		case i < s.FPS:
			// fade in
			alpha := int(255 * float64(i) / fps)
			applyOpacity(frame, clampAlpha(alpha))
		}
		frames = append(frames, frame)
	}
	return Clip{Frames: frames, FPS: s.FPS}
}

// Transition recomposes every frame at its own progress fraction, since
// the wipe position depends on time.
func (s Sequencer) Transition(duration float64, compose func(progress float64) *image.RGBA) Clip {
	total := FrameCount(duration, s.FPS)
	frames := make([]*image.RGBA, 0, total)
	for i := 0; i < total; i++ {
		progress := float64(i) / float64(total)
		frames = append(frames, compose(progress))
	}
	return Clip{Frames: frames, FPS: s.FPS}
}

// applyOpacity scales every channel of the frame, including alpha.
// Кадры premultiplied: RGB гасится вместе с альфой, иначе fade не виден
// после конвертации в yuv420p.
func applyOpacity(frame *image.RGBA, alpha uint8) {
	if alpha == 255 {
		return
	}
	a := uint32(alpha)
	for i := range frame.Pix {
		frame.Pix[i] = uint8(uint32(frame.Pix[i]) * a / 255)
	}
}

func clampAlpha(a int) uint8 {
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return uint8(a)
}
