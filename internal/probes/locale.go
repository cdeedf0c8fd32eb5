package probes

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

// localeSource normalizes the process locale to a canonical BCP 47 tag so
// "en_US.UTF-8" and "en-us" canonicalize identically across hosts.
type localeSource struct{}

func (localeSource) Name() string { return "locale" }

func (localeSource) Collect(_ context.Context, _ *probe.Environment) probe.Reading {
	raw := firstLocaleVar("LC_ALL", "LC_MESSAGES", "LANG")
	return probe.Immediate(map[string]any{
		"tag": canonicalTag(raw),
		"raw": raw,
	})
}

func firstLocaleVar(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func canonicalTag(raw string) string {
	if raw == "" || strings.EqualFold(raw, "C") || strings.EqualFold(raw, "POSIX") {
		return "und"
	}
	// Strip the charset/modifier suffix: "en_US.UTF-8@euro" -> "en_US".
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return "und"
	}
	return tag.String()
}
