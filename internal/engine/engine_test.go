package engine

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stemsprouts/renderer/internal/clip"
	"github.com/stemsprouts/renderer/internal/config"
	"github.com/stemsprouts/renderer/internal/script"
)

// captureEncoder records the timeline instead of invoking ffmpeg.
type captureEncoder struct {
	timeline clip.Clip
	path     string
	err      error
}

func (c *captureEncoder) Encode(_ context.Context, timeline clip.Clip, outputPath string) error {
	c.timeline = timeline
	c.path = outputPath
	return c.err
}

func testProject(t *testing.T) *RenderProject {
	t.Helper()

	cfg := config.DefaultRenderSettings()
	cfg.Width = 160
	cfg.Height = 90
	cfg.FPS = 10
	cfg.Workers = 2
	cfg.OutputDir = t.TempDir()

	p, err := NewRenderProject(cfg)
	if err != nil {
		t.Fatalf("NewRenderProject: %v", err)
	}
	return p
}

func TestAssembleSegmentsSingleStep(t *testing.T) {
	p := testProject(t)

	sc := script.Script{
		Title: "Baking Soda Volcano",
		Steps: []script.Step{{Description: "Mix vinegar with baking soda", Duration: 5}},
	}

	segments, warnings, err := p.AssembleSegments(context.Background(), sc)
	if err != nil {
		t.Fatalf("AssembleSegments: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	// intro + transition + one step, no trailing transition
	if len(segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segments))
	}

	wantFrames := []int{30, 10, 50} // 3.0s, 1.0s, 5.0s at 10 FPS
	for i, want := range wantFrames {
		if got := len(segments[i].Frames); got != want {
			t.Errorf("Segment %d: expected %d frames, got %d", i, want, got)
		}
	}
}

func TestAssembleSegmentsInterleavesTransitions(t *testing.T) {
	p := testProject(t)

	sc := script.Script{
		Title: "Density Tower",
		Steps: []script.Step{
			{Description: "Pour honey into the glass", Duration: 4},
			{Description: "Add dish soap slowly", Duration: 4},
			{Description: "Finish with oil and water", Duration: 4},
		},
	}

	segments, _, err := p.AssembleSegments(context.Background(), sc)
	if err != nil {
		t.Fatalf("AssembleSegments: %v", err)
	}

	// intro, transition, step, half, step, half, step
	if len(segments) != 7 {
		t.Fatalf("Expected 7 segments, got %d", len(segments))
	}

	// the inter-step transitions run half a second
	for _, i := range []int{3, 5} {
		if got := len(segments[i].Frames); got != 5 {
			t.Errorf("Segment %d: expected 5 frames for the half transition, got %d", i, got)
		}
	}
}

func TestAssembleSegmentsEmptyScript(t *testing.T) {
	p := testProject(t)

	segments, _, err := p.AssembleSegments(context.Background(), script.Script{})
	if err != nil {
		t.Fatalf("AssembleSegments: %v", err)
	}

	// an empty script still yields a branded intro and a transition
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments for an empty script, got %d", len(segments))
	}
	if got := len(segments[0].Frames) + len(segments[1].Frames); got != 40 {
		t.Errorf("Expected 40 total frames, got %d", got)
	}
}

func TestAssembleSegmentsAppendsOutro(t *testing.T) {
	p := testProject(t)

	sc := script.Script{
		Title:       "Invisible Ink",
		ActivityURL: "https://stemsprouts.example/activities/invisible-ink",
	}

	segments, warnings, err := p.AssembleSegments(context.Background(), sc)
	if err != nil {
		t.Fatalf("AssembleSegments: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	if len(segments) != 3 {
		t.Fatalf("Expected intro, transition and outro, got %d segments", len(segments))
	}
	if got := len(segments[2].Frames); got != 30 {
		t.Errorf("Expected a 3s outro (30 frames), got %d", got)
	}
}

func TestAssembleSegmentsWarnsWhenOutroFails(t *testing.T) {
	p := testProject(t)

	// слишком длинный URL не помещается в QR-код
	sc := script.Script{
		Title:       "Invisible Ink",
		ActivityURL: "https://stemsprouts.example/" + strings.Repeat("x", 5000),
	}

	segments, warnings, err := p.AssembleSegments(context.Background(), sc)
	if err != nil {
		t.Fatalf("AssembleSegments: %v", err)
	}

	if len(segments) != 2 {
		t.Errorf("A failed outro must be skipped, got %d segments", len(segments))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "outro skipped") {
		t.Errorf("Expected an outro warning, got %v", warnings)
	}
}

func TestAssembleSegmentsHonorsCancellation(t *testing.T) {
	p := testProject(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := script.Script{
		Title: "Volcano",
		Steps: []script.Step{{Description: "Mix", Duration: 2}},
	}
	if _, _, err := p.AssembleSegments(ctx, sc); err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
}

func TestRenderProducesArtifact(t *testing.T) {
	p := testProject(t)
	enc := &captureEncoder{}
	p.Encoder = enc

	sc := script.Script{
		Title: "Baking Soda Volcano",
		Steps: []script.Step{{Description: "Watch the eruption", Duration: 2}},
	}

	result, err := p.Render(context.Background(), sc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// 3.0s intro + 1.0s transition + 2.0s step at 10 FPS
	if result.Frames != 60 {
		t.Errorf("Expected 60 frames, got %d", result.Frames)
	}
	if result.Segments != 3 {
		t.Errorf("Expected 3 segments, got %d", result.Segments)
	}
	if len(enc.timeline.Frames) != result.Frames {
		t.Errorf("Encoder received %d frames, result reports %d", len(enc.timeline.Frames), result.Frames)
	}
	if enc.timeline.FPS != 10 {
		t.Errorf("Expected the timeline at 10 FPS, got %d", enc.timeline.FPS)
	}

	base := filepath.Base(result.OutputPath)
	if !strings.HasPrefix(base, "stem_activity_") || !strings.HasSuffix(base, ".mp4") {
		t.Errorf("Unexpected artifact name %q", base)
	}
	if enc.path != result.OutputPath {
		t.Errorf("Encoder wrote %q, result reports %q", enc.path, result.OutputPath)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", result.Warnings)
	}
}

func TestRenderPropagatesWarnings(t *testing.T) {
	p := testProject(t)
	p.Encoder = &captureEncoder{}

	// аутро с нерендерируемым QR даёт деградацию, но не ошибку
	sc := script.Script{
		Title:       "Volcano",
		ActivityURL: "https://stemsprouts.example/" + strings.Repeat("x", 5000),
	}

	result, err := p.Render(context.Background(), sc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected the degraded outro to surface as a warning")
	}
}

func TestRenderSurfacesEncoderFailure(t *testing.T) {
	p := testProject(t)
	p.Encoder = &captureEncoder{err: context.DeadlineExceeded}

	_, err := p.Render(context.Background(), script.Script{Title: "Volcano"})
	if err == nil {
		t.Fatal("Expected the encoder failure to surface")
	}
}

func TestPreviewReturnsPNG(t *testing.T) {
	p := testProject(t)

	data, err := p.Preview("Slime Lab")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("Expected a PNG payload, got %d bytes", len(data))
	}
}
