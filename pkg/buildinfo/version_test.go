package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "dev", "abc123"
	if got := CacheScope(); got != "dev-abc123:" {
		t.Errorf("CacheScope() = %q, want %q", got, "dev-abc123:")
	}

	Version = "v1.2.3"
	if got := CacheScope(); got != "v1.2.3:" {
		t.Errorf("CacheScope() = %q, want %q", got, "v1.2.3:")
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
	if Get().Version != Version {
		t.Errorf("Get().Version = %q, want %q", Get().Version, Version)
	}
}
