package intutils

import (
	"reflect"
	"testing"
)

func TestMinMax(t *testing.T) {
	if got := Min(3, -1, 2); got != -1 {
		t.Errorf("min = %d, want -1", got)
	}
	if got := Max(3, -1, 7); got != 7 {
		t.Errorf("max = %d, want 7", got)
	}
}

func TestRange(t *testing.T) {
	if got := Range(5, 3); !reflect.DeepEqual(got, []int{5, 6, 7}) {
		t.Errorf("range = %v", got)
	}
	if got := Range(5, 0); len(got) != 0 {
		t.Errorf("empty range = %v", got)
	}
}
