package confidence

import (
	"strings"

	"github.com/zhyswan/fingerprintjs/internal/component"
)

// PlatformComponent names the component the estimator reads.
const PlatformComponent = "platform"

// DefaultScore applies when the platform cannot be recognized at all.
const DefaultScore = 0.7

// Estimate is the heuristic result: Score is in [0,1], Detail names the rule
// that produced it.
type Estimate struct {
	Score  float64 `json:"score"`
	Detail string  `json:"detail,omitempty"`
}

var familyScores = map[string]float64{
	"android": 0.4,
	"ios":     0.3,
	"darwin":  0.5,
	"macos":   0.5,
	"windows": 0.6,
	"linux":   0.5,
}

// FromComponents scores the set by its platform component. A missing or
// failed platform component falls back to the default score.
func FromComponents(set *component.Set) Estimate {
	family := platformFamily(set)
	if family == "" {
		return Estimate{Score: DefaultScore, Detail: "platform unavailable"}
	}
	if score, ok := familyScores[family]; ok {
		return Estimate{Score: score, Detail: "os family " + family}
	}
	return Estimate{Score: DefaultScore, Detail: "unrecognized platform " + family}
}

func platformFamily(set *component.Set) string {
	c, ok := set.Lookup(PlatformComponent)
	if !ok || c.Outcome.Failed() {
		return ""
	}
	switch value := c.Outcome.Value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(value))
	case map[string]any:
		if os, ok := value["os"].(string); ok {
			return strings.ToLower(strings.TrimSpace(os))
		}
	}
	return ""
}
