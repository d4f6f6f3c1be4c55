package encoder

import (
	"context"
	"fmt"
	"image"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/stemsprouts/renderer/internal/clip"
	"github.com/stemsprouts/renderer/internal/config"
)

// TimelineEncoder serializes an assembled frame timeline to a video file.
type TimelineEncoder interface {
	Encode(ctx context.Context, timeline clip.Clip, outputPath string) error
}

// FFmpegEncoder streams raw RGBA frames into ffmpeg through stdin and
// lets the codec do all the hard work: color-space conversion, rate
// control, container muxing.
type FFmpegEncoder struct {
	Settings config.RenderSettings
}

// NewFFmpegEncoder builds the encoder around immutable render settings.
func NewFFmpegEncoder(cfg config.RenderSettings) *FFmpegEncoder {
	return &FFmpegEncoder{Settings: cfg}
}

// Encode writes the timeline to outputPath. Кадры уходят в ffmpeg как
// rawvideo rgba через pipe — без временных файлов на диске.
func (e *FFmpegEncoder) Encode(ctx context.Context, timeline clip.Clip, outputPath string) error {
	if len(timeline.Frames) == 0 {
		return fmt.Errorf("пустой таймлайн: нечего кодировать")
	}

	cfg := e.Settings
	first := timeline.Frames[0].Bounds()
	width, height := first.Dx(), first.Dy()

	pr, pw := io.Pipe()

	stream := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":       "rawvideo",
		"pixel_format": "rgba",
		"video_size":   fmt.Sprintf("%dx%d", width, height),
		"framerate":    fmt.Sprintf("%d", timeline.FPS),
	}).Output(outputPath, ffmpeg.KwArgs{
		"c:v":     cfg.VideoEncoder,
		"b:v":     cfg.VideoBitrate,
		"preset":  cfg.Preset,
		"threads": fmt.Sprintf("%d", cfg.Threads),
		"pix_fmt": "yuv420p",
		"r":       fmt.Sprintf("%d", timeline.FPS),
		// Аудиодорожка пока не подключена: параметры кодека заготовлены
		// под будущий фоновый трек
		"c:a": "aac",
		"b:a": cfg.AudioBitrate,
	}).OverWriteOutput().WithInput(pr)

	done := make(chan error, 1)
	go func() {
		done <- stream.Run()
	}()

	for i, frame := range timeline.Frames {
		select {
		case <-ctx.Done():
			pw.CloseWithError(ctx.Err())
			<-done
			return ctx.Err()
		case err := <-done:
			// ffmpeg умер раньше, чем закончились кадры
			pw.CloseWithError(err)
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("ffmpeg завершился на кадре %d: %w", i, err)
		default:
		}

		if err := writeRawRGBA(pw, frame); err != nil {
			pw.CloseWithError(err)
			<-done
			return fmt.Errorf("запись кадра %d: %w", i, err)
		}
	}
	pw.Close()

	if err := <-done; err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// writeRawRGBA dumps the frame's pixels in the exact layout ffmpeg
// expects for rawvideo rgba input.
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	rgba := clip.ToRGBA(img)
	_, err := w.Write(rgba.Pix)
	return err
}
