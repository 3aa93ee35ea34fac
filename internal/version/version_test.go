package version

import (
	"strings"
	"testing"
)

func TestStringPlain(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := String(false); got != "convlint 1.2.3" {
		t.Fatalf("String = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	if got := String(false); got != "convlint 1.2.3 (abc123 2024-01-15T10:30:00Z)" {
		t.Fatalf("String = %q", got)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "0.1.0-dev"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("Colored = %q", got)
	}
	Version = "weird"
	if Colored(true) != "weird" {
		t.Fatal("unparsable versions are returned as is")
	}
}
