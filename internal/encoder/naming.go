package encoder

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"

	"github.com/stemsprouts/renderer/internal/script"
)

// artifactSeq is the per-process render counter. Вместе с хэшем скрипта
// даёт имена без коллизий вместо прежнего случайного суффикса.
var artifactSeq atomic.Uint64

// ArtifactName builds a request-derived, collision-free artifact name.
// The stem_activity_ prefix is part of the frontend contract.
func ArtifactName(s script.Script) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s", s.Title, s.ActivityURL)
	for _, step := range s.Steps {
		fmt.Fprintf(h, "|%s@%.2f", step.Description, step.Duration)
	}

	seq := artifactSeq.Add(1)
	return fmt.Sprintf("stem_activity_%08x_%04d.mp4", h.Sum32(), seq)
}
