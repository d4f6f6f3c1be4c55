package encoder

import (
	"strings"
	"testing"

	"github.com/stemsprouts/renderer/internal/script"
)

func TestArtifactNameUniqueForIdenticalScripts(t *testing.T) {
	s := script.Script{
		Title: "Volcano",
		Steps: []script.Step{{Description: "Mix baking soda and vinegar", Duration: 4}},
	}

	a := ArtifactName(s)
	b := ArtifactName(s)

	if a == b {
		t.Fatalf("Repeated identical requests must produce distinct names, got %q twice", a)
	}

	// same script hashes identically; only the sequence differs
	hashOf := func(name string) string {
		parts := strings.Split(name, "_")
		return parts[2]
	}
	if hashOf(a) != hashOf(b) {
		t.Errorf("Expected identical script hashes, got %q and %q", hashOf(a), hashOf(b))
	}
}

func TestArtifactNameShape(t *testing.T) {
	name := ArtifactName(script.Script{Title: "Density Tower"})

	if !strings.HasPrefix(name, "stem_activity_") {
		t.Errorf("Expected the stem_activity_ prefix, got %q", name)
	}
	if !strings.HasSuffix(name, ".mp4") {
		t.Errorf("Expected an .mp4 artifact, got %q", name)
	}
}

func TestArtifactNameDependsOnScript(t *testing.T) {
	a := ArtifactName(script.Script{Title: "Volcano"})
	b := ArtifactName(script.Script{Title: "Slime"})

	partsA := strings.Split(a, "_")
	partsB := strings.Split(b, "_")
	if partsA[2] == partsB[2] {
		t.Errorf("Different scripts should hash differently: %q vs %q", a, b)
	}
}
