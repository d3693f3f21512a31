package names_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/modelplane/modelplane/pkg/names"
)

func TestSanitize(t *testing.T) {
	type When struct {
		Name string
	}
	type Then struct {
		Sanitized string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			actual := names.Sanitize(when.Name)
			if actual != then.Sanitized {
				t.Errorf("expected %q, got %q", then.Sanitized, actual)
			}
		}
	}

	t.Run("it lowercases and replaces invalid characters", theory(
		When{Name: "My Project_1"},
		Then{Sanitized: "my-project-1"},
	))
	t.Run("it strips leading and trailing hyphens", theory(
		When{Name: "__alpha beta!"},
		Then{Sanitized: "alpha-beta"},
	))
	t.Run("it keeps an already-safe name as is", theory(
		When{Name: "alpha-1"},
		Then{Sanitized: "alpha-1"},
	))
	t.Run("it yields empty string for all-invalid input", theory(
		When{Name: "___"},
		Then{Sanitized: ""},
	))
}

func TestSanitize_OnlySafeCharactersRemain(t *testing.T) {
	safe := regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?)?$`)
	for _, name := range []string{
		"My Project_1", "UPPER", "tré$-chic", "a", "-x-",
	} {
		if got := names.Sanitize(name); !safe.MatchString(got) {
			t.Errorf("Sanitize(%q) = %q: not cluster-safe", name, got)
		}
	}
}

func TestSanitizeWithHash(t *testing.T) {
	t.Run("it is deterministic", func(t *testing.T) {
		a := names.ForCluster("my project")
		b := names.ForCluster("my project")
		if a != b {
			t.Errorf("not deterministic: %q != %q", a, b)
		}
	})

	t.Run("it bounds length and keeps long names distinct", func(t *testing.T) {
		long1 := strings.Repeat("a", 80) + "x"
		long2 := strings.Repeat("a", 80) + "y"
		n1 := names.ForCluster(long1)
		n2 := names.ForCluster(long2)
		if names.MaxClusterNameLength < len(n1) {
			t.Errorf("name too long: %d chars", len(n1))
		}
		if n1 == n2 {
			t.Errorf("distinct inputs collided: %q", n1)
		}
	})

	t.Run("dashboard uid fits the Grafana limit", func(t *testing.T) {
		uid := names.ForDashboard(strings.Repeat("project-model-version", 5))
		if names.MaxDashboardUIDLength < len(uid) {
			t.Errorf("uid too long: %d chars", len(uid))
		}
	})

	t.Run("short names keep their whole prefix", func(t *testing.T) {
		got := names.ForCluster("alpha")
		if !strings.HasPrefix(got, "alpha-") {
			t.Errorf("expected prefix alpha-, got %q", got)
		}
		if len(got) != len("alpha")+7 {
			t.Errorf("expected 6-char hash suffix, got %q", got)
		}
	})
}
