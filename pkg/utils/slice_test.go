package utils_test

import (
	"fmt"
	"testing"

	"github.com/modelplane/modelplane/pkg/utils"
)

func TestMap(t *testing.T) {
	got := utils.Map([]int{1, 2, 3}, func(v int) string {
		return fmt.Sprintf("#%d", v)
	})

	want := []string{"#1", "#2", "#3"}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d]: got %s, want %s", i, got[i], want[i])
		}
	}

	if empty := utils.Map([]int{}, func(v int) int { return v }); len(empty) != 0 {
		t.Errorf("mapping an empty slice should stay empty: %v", empty)
	}
}
