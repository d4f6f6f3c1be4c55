package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stemsprouts/renderer/internal/clip"
	"github.com/stemsprouts/renderer/internal/compositor"
	"github.com/stemsprouts/renderer/internal/config"
	"github.com/stemsprouts/renderer/internal/encoder"
	"github.com/stemsprouts/renderer/internal/postfx"
	"github.com/stemsprouts/renderer/internal/script"
)

// Fixed scene timing, seconds. Половинный переход ставится между шагами.
const (
	introDuration      = 3.0
	transitionDuration = 1.0
	outroDuration      = 3.0
)

// RenderProject drives the full pipeline: script -> canvases -> frame
// sequences -> timeline -> enhancement -> encoded artifact.
type RenderProject struct {
	Settings   config.RenderSettings
	Compositor *compositor.Compositor
	Enhancer   postfx.Enhancer
	Encoder    encoder.TimelineEncoder
}

// NewRenderProject wires the production pipeline for the given settings.
func NewRenderProject(cfg config.RenderSettings) (*RenderProject, error) {
	comp, err := compositor.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}

	return &RenderProject{
		Settings:   cfg,
		Compositor: comp,
		Enhancer:   postfx.NewEnhancer(),
		Encoder:    encoder.NewFFmpegEncoder(cfg),
	}, nil
}

// Result reports one finished render, including the phases that degraded
// instead of failing.
type Result struct {
	OutputPath string
	Segments   int
	Frames     int
	Warnings   []string
	Elapsed    time.Duration
}

// AssembleSegments builds the ordered segment list for a script: intro,
// transition, then every step followed by a half-duration transition
// (except the last), plus the optional QR outro.
func (p *RenderProject) AssembleSegments(ctx context.Context, sc script.Script) ([]clip.Clip, []string, error) {
	sc.Normalize()
	seq := clip.Sequencer{FPS: p.Settings.FPS}

	var warnings []string
	var segments []clip.Clip

	introCanvas, err := p.Compositor.Intro(sc.Title)
	if err != nil {
		// единственный путь восстановления во всём пайплайне
		log.Printf("[!] Ошибка композиции интро: %v", err)
		warnings = append(warnings, fmt.Sprintf("intro degraded to fallback canvas: %v", err))
		introCanvas = p.Compositor.FallbackIntro(sc.Title)
	}
	segments = append(segments, seq.Intro(introCanvas, introDuration))
	segments = append(segments, seq.Transition(transitionDuration, p.Compositor.TransitionFrame))

	// Карточки шагов рисуются параллельно, порядок фиксирован индексом
	workers := p.Settings.Workers
	if workers < 1 {
		workers = 1
	}
	canvases := make([]*image.RGBA, len(sc.Steps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, step := range sc.Steps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			canvases[i] = p.Compositor.StepCard(step.Description, i+1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	for i, step := range sc.Steps {
		segments = append(segments, seq.Still(canvases[i], step.Duration))
		if i < len(sc.Steps)-1 {
			segments = append(segments, seq.Transition(transitionDuration/2, p.Compositor.TransitionFrame))
		}
	}

	if sc.ActivityURL != "" {
		outroCanvas, err := p.Compositor.Outro(sc.ActivityURL)
		if err != nil {
			log.Printf("[!] Ошибка композиции аутро: %v", err)
			warnings = append(warnings, fmt.Sprintf("outro skipped: %v", err))
		} else {
			segments = append(segments, seq.Still(outroCanvas, outroDuration))
		}
	}

	return segments, warnings, nil
}

// Render runs the pipeline end to end and writes the MP4 artifact.
func (p *RenderProject) Render(ctx context.Context, sc script.Script) (*Result, error) {
	startTime := time.Now()
	sc.Normalize()

	segments, warnings, err := p.AssembleSegments(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("сборка сегментов: %w", err)
	}
	composeEnd := time.Now()

	timeline := clip.Concat(segments...)

	enhanced, err := p.Enhancer.Enhance(ctx, timeline)
	if err != nil {
		log.Printf("[!] Улучшение таймлайна пропущено: %v", err)
		warnings = append(warnings, fmt.Sprintf("enhancement skipped: %v", err))
		enhanced = timeline
	}
	enhanceEnd := time.Now()

	if err := os.MkdirAll(p.Settings.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("каталог артефактов: %w", err)
	}
	outputPath := filepath.Join(p.Settings.OutputDir, encoder.ArtifactName(sc))

	fmt.Printf("[*] Кодирование: %d сегментов, %d кадров @ %d FPS -> %s\n",
		len(segments), len(enhanced.Frames), enhanced.FPS, outputPath)

	if err := p.Encoder.Encode(ctx, enhanced, outputPath); err != nil {
		return nil, fmt.Errorf("кодирование: %w", err)
	}

	result := &Result{
		OutputPath: outputPath,
		Segments:   len(segments),
		Frames:     len(enhanced.Frames),
		Warnings:   warnings,
		Elapsed:    time.Since(startTime),
	}

	if p.Settings.ShowStats {
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Build: %s\n"+
				"Total Time: %.2fs\n"+
				"Composition: %.2fs\n"+
				"Enhancement: %.2fs\n"+
				"Encoding: %.2fs\n"+
				"----------------------------\n",
			p.Settings.BuildVersion,
			result.Elapsed.Seconds(),
			composeEnd.Sub(startTime).Seconds(),
			enhanceEnd.Sub(composeEnd).Seconds(),
			time.Since(enhanceEnd).Seconds(),
		)
	}

	fmt.Printf("[>] Готово: %s (%d предупреждений)\n", outputPath, len(warnings))
	return result, nil
}

// Preview renders the intro canvas alone and returns it PNG-encoded,
// fully in memory. Временных файлов превью больше не оставляет.
func (p *RenderProject) Preview(title string) ([]byte, error) {
	if title == "" {
		title = script.DefaultTitle
	}

	canvas, err := p.Compositor.Intro(title)
	if err != nil {
		log.Printf("[!] Ошибка композиции превью: %v", err)
		canvas = p.Compositor.FallbackIntro(title)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
