package identity

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"

	"github.com/zhyswan/fingerprintjs/internal/component"
	"github.com/zhyswan/fingerprintjs/internal/confidence"
	"github.com/zhyswan/fingerprintjs/internal/murmur3"
)

// SchemaVersion is stamped on every result so stored fingerprints can be
// told apart after the component roster or canonical form changes.
const SchemaVersion = "1.1"

// Result is the outcome of one identification run. Everything except the
// lazily computed identifier is immutable after construction.
type Result struct {
	RunID         string
	Components    *component.Set
	Confidence    confidence.Estimate
	SchemaVersion string
	CreatedAt     time.Time

	once       sync.Once
	identifier string
}

// Identifier canonicalizes the component set and hashes it with Murmur3
// x64-128. Computed at most once per Result and memoized.
func (r *Result) Identifier() string {
	r.once.Do(func() {
		r.identifier = murmur3.SumString(component.Canonical(r.Components))
	})
	return r.identifier
}

// MarshalJSON renders the wire schema. Field names and the 32-hex identifier
// format are compatibility-sensitive; components keep registration order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"identifier":`)
	if err := writeJSONValue(&buf, r.Identifier()); err != nil {
		return nil, err
	}
	buf.WriteString(`,"confidence":`)
	if err := writeJSONValue(&buf, r.Confidence); err != nil {
		return nil, err
	}
	buf.WriteString(`,"components":`)
	if err := writeComponents(&buf, r.Components); err != nil {
		return nil, err
	}
	buf.WriteString(`,"schemaVersion":`)
	if err := writeJSONValue(&buf, r.SchemaVersion); err != nil {
		return nil, err
	}
	buf.WriteString(`,"runId":`)
	if err := writeJSONValue(&buf, r.RunID); err != nil {
		return nil, err
	}
	buf.WriteString(`,"createdAt":`)
	if err := writeJSONValue(&buf, r.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// The per-component wire form carries exactly one of value/error plus the
// cumulative duration in milliseconds.
type valueComponentJSON struct {
	Value      any   `json:"value"`
	DurationMs int64 `json:"durationMs"`
}

type errorComponentJSON struct {
	Error      string `json:"error"`
	DurationMs int64  `json:"durationMs"`
}

func writeComponents(buf *bytes.Buffer, set *component.Set) error {
	buf.WriteByte('{')
	for i, c := range set.Components() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(buf, c.Name); err != nil {
			return err
		}
		buf.WriteByte(':')
		durationMs := c.Outcome.Duration.Milliseconds()
		var entry any
		if c.Outcome.Failed() {
			entry = errorComponentJSON{Error: c.Outcome.Err.Error(), DurationMs: durationMs}
		} else {
			entry = valueComponentJSON{Value: c.Outcome.Value, DurationMs: durationMs}
		}
		if err := writeJSONValue(buf, entry); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
