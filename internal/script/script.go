package script

// DefaultStepDuration is applied to steps that arrive without a duration.
const DefaultStepDuration = 5.0

// DefaultTitle is used when the caller sends an empty title.
const DefaultTitle = "STEM Activity"

// Script is the scene script for one video: a title plus an ordered list
// of activity steps. It is supplied wholesale by the caller and consumed
// to produce exactly one artifact.
type Script struct {
	Title string `json:"title" yaml:"title"`
	Steps []Step `json:"steps" yaml:"steps"`
	// ActivityURL, when set, adds a closing card with a QR code
	// pointing back at the activity page.
	ActivityURL string `json:"activity_url,omitempty" yaml:"activity_url,omitempty"`
}

// Step is one instruction card. A step has no identity beyond its
// position in the sequence.
type Step struct {
	Description string  `json:"description" yaml:"description"`
	Duration    float64 `json:"duration" yaml:"duration"`
}

// Normalize fills in defaults for fields the caller omitted. Missing
// steps stay missing: an empty script still renders (intro + transition).
func (s *Script) Normalize() {
	if s.Title == "" {
		s.Title = DefaultTitle
	}
	for i := range s.Steps {
		if s.Steps[i].Duration <= 0 {
			s.Steps[i].Duration = DefaultStepDuration
		}
	}
}
