package component

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

func mustZip(t *testing.T, names []string, outcomes []probe.Outcome) *Set {
	t.Helper()
	set, err := Zip(names, outcomes)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	return set
}

func TestZipPreservesRegistrationOrder(t *testing.T) {
	set := mustZip(t,
		[]string{"zeta", "alpha", "mid"},
		[]probe.Outcome{{Value: 1}, {Value: 2}, {Value: 3}},
	)

	names := set.Names()
	want := []string{"zeta", "alpha", "mid"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}

	c, ok := set.Lookup("alpha")
	if !ok || c.Outcome.Value != 2 {
		t.Fatalf("Lookup(alpha) = (%+v, %v)", c, ok)
	}
}

func TestZipRejectsMismatchAndDuplicates(t *testing.T) {
	if _, err := Zip([]string{"a"}, nil); err == nil {
		t.Fatal("expected mismatch error")
	}
	if _, err := Zip([]string{"a", "a"}, []probe.Outcome{{}, {}}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestCanonicalSortsKeys(t *testing.T) {
	set := mustZip(t, []string{"b", "a"}, []probe.Outcome{{Value: 2}, {Value: 1}})
	if got := Canonical(set); got != "a:1|b:2" {
		t.Fatalf("Canonical = %q, want %q", got, "a:1|b:2")
	}
}

func TestCanonicalErrorToken(t *testing.T) {
	set := mustZip(t,
		[]string{"x", "y"},
		[]probe.Outcome{{Err: errors.New("some nondeterministic stack trace")}, {Value: 5}},
	)
	if got := Canonical(set); got != "x:error|y:5" {
		t.Fatalf("Canonical = %q, want %q", got, "x:error|y:5")
	}
}

func TestCanonicalIsDeterministic(t *testing.T) {
	set := mustZip(t,
		[]string{"platform", "cpu"},
		[]probe.Outcome{
			{Value: map[string]any{"os": "linux", "arch": "amd64"}},
			{Value: 16},
		},
	)
	first := Canonical(set)
	second := Canonical(set)
	if first != second {
		t.Fatalf("canonicalization unstable: %q vs %q", first, second)
	}
	// Nested map keys must render sorted.
	if !strings.Contains(first, `{"arch":"amd64","os":"linux"}`) {
		t.Fatalf("nested keys not sorted: %q", first)
	}
}

func TestCanonicalIgnoresRegistrationOrder(t *testing.T) {
	outcomes := map[string]probe.Outcome{
		"c": {Value: "v3"},
		"a": {Value: "v1"},
		"b": {Err: errors.New("boom")},
	}
	build := func(order []string) *Set {
		names := make([]string, 0, len(order))
		values := make([]probe.Outcome, 0, len(order))
		for _, name := range order {
			names = append(names, name)
			values = append(values, outcomes[name])
		}
		return mustZip(t, names, values)
	}

	first := Canonical(build([]string{"a", "b", "c"}))
	second := Canonical(build([]string{"c", "a", "b"}))
	if first != second {
		t.Fatalf("permuted registrations canonicalize differently:\n%q\n%q", first, second)
	}
}

func TestCanonicalEscapesDelimiters(t *testing.T) {
	set := mustZip(t,
		[]string{`we:ird|name\x`},
		[]probe.Outcome{{Value: "a:b|c"}},
	)
	got := Canonical(set)
	want := `we\:ird\|name\\x:"a\:b\|c"`
	if got != want {
		t.Fatalf("Canonical = %q, want %q", got, want)
	}
}

func TestCanonicalDurationIsExcluded(t *testing.T) {
	fast := mustZip(t, []string{"a"}, []probe.Outcome{{Value: 1, Duration: time.Millisecond}})
	slow := mustZip(t, []string{"a"}, []probe.Outcome{{Value: 1, Duration: time.Second}})
	if Canonical(fast) != Canonical(slow) {
		t.Fatal("durations must not affect the canonical string")
	}
}

func TestCanonicalEmpty(t *testing.T) {
	if got := Canonical(nil); got != "" {
		t.Fatalf("Canonical(nil) = %q", got)
	}
}

func TestDebugStringDistinguishesErrors(t *testing.T) {
	set := mustZip(t,
		[]string{"good", "bad"},
		[]probe.Outcome{
			{Value: 5, Duration: 3 * time.Millisecond},
			{Err: errors.New("crawl exceeded 5s"), Duration: 5 * time.Second},
		},
	)
	dump := DebugString(set)
	if !strings.Contains(dump, "good: 5 (3ms)") {
		t.Fatalf("value line missing: %q", dump)
	}
	if !strings.Contains(dump, "bad: error: crawl exceeded 5s") {
		t.Fatalf("error line missing: %q", dump)
	}
	lines := strings.Split(dump, "\n")
	if !strings.HasPrefix(lines[0], "good:") {
		t.Fatalf("debug output should follow registration order: %q", dump)
	}
}
