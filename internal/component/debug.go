package component

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DebugString renders the set for humans, one component per line in
// registration order, with error components clearly distinguished. Not part
// of the wire contract.
func DebugString(s *Set) string {
	if s == nil || s.Len() == 0 {
		return "(no components)"
	}
	var b strings.Builder
	for _, c := range s.Components() {
		b.WriteString(c.Name)
		b.WriteString(": ")
		if c.Outcome.Failed() {
			b.WriteString("error: ")
			b.WriteString(c.Outcome.Err.Error())
		} else if encoded, err := json.Marshal(c.Outcome.Value); err == nil {
			b.Write(encoded)
		} else {
			fmt.Fprintf(&b, "%v", c.Outcome.Value)
		}
		fmt.Fprintf(&b, " (%dms)\n", c.Outcome.Duration.Milliseconds())
	}
	return strings.TrimRight(b.String(), "\n")
}
