package formats

import "github.com/mind-engage/mindengage-bac/internal/exam"

// Adapter defines validation and grading scale for a given exam profile.
type Adapter interface {
	// Validate enforces profile-specific constraints on an authored preset.
	Validate(p exam.Preset) error
	// ScaleKey names the ScaleMapper that turns raw points into a grade.
	ScaleKey() string
}

// Registry of adapters by profile key (e.g., "bac.v1")
var registry = map[string]Adapter{}

// Register a profile adapter. Call from init() in subpackages.
func Register(profile string, a Adapter) { registry[profile] = a }

// Lookup returns a registered adapter for a profile.
func Lookup(profile string) (Adapter, bool) { a, ok := registry[profile]; return a, ok }
