package component

import (
	"encoding/json"
	"sort"
	"strings"
)

// ErrorToken replaces every error outcome in the canonical string. Error
// details are non-deterministic across environments, so collapsing them
// keeps identifiers stable regardless of why a source failed.
const ErrorToken = "error"

// escaper makes the field and record delimiters unambiguous inside names and
// rendered values. Backslash first so escapes themselves survive.
var escaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`, `|`, `\|`)

// Canonical serializes the set into the single deterministic string hashed
// into the identifier. Names are sorted lexicographically, values rendered as
// compact JSON (Go marshals map keys in sorted order, so nested structures
// are stable), records joined as "name:value|name:value" with no trailing
// delimiter.
func Canonical(s *Set) string {
	if s == nil || len(s.names) == 0 {
		return ""
	}
	names := append([]string(nil), s.names...)
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(escaper.Replace(name))
		b.WriteByte(':')
		b.WriteString(escaper.Replace(renderOutcome(s.byName[name])))
	}
	return b.String()
}

func renderOutcome(c Component) string {
	if c.Outcome.Failed() {
		return ErrorToken
	}
	encoded, err := json.Marshal(c.Outcome.Value)
	if err != nil {
		// A value the encoder cannot represent is indistinguishable from a
		// failed source as far as the identifier is concerned.
		return ErrorToken
	}
	return string(encoded)
}
