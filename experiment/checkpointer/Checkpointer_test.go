package checkpointer

import (
	"reflect"
	"strings"
	"testing"
)

// saver records the filenames it was saved to
type saver struct {
	saved []string
}

func (s *saver) SaveAs(filename string) error {
	s.saved = append(s.saved, filename)
	return nil
}

func TestNStep(t *testing.T) {
	s := &saver{}
	c := NewNStep(3, s, FilenameEnumerator(0, "checkpoint", ".bin"))

	for completed := 0; completed <= 10; completed++ {
		if err := c.Checkpoint(completed); err != nil {
			t.Fatalf("checkpoint(%d): %v", completed, err)
		}
	}

	want := []string{"checkpoint1.bin", "checkpoint2.bin", "checkpoint3.bin"}
	if !reflect.DeepEqual(s.saved, want) {
		t.Errorf("saved %v, want %v", s.saved, want)
	}
}

func TestNStepInterval(t *testing.T) {
	s := &saver{}
	c := NewNStep(0, s, func() string { return "checkpoint.bin" })

	for completed := 1; completed <= 4; completed++ {
		c.Checkpoint(completed)
	}
	if len(s.saved) != 4 {
		t.Errorf("saved %d times with a non-positive interval, want 4",
			len(s.saved))
	}
}

func TestFileTimer(t *testing.T) {
	name := FileTimer("checkpoint", ".bin")()
	if !strings.HasPrefix(name, "checkpoint-") || !strings.HasSuffix(name, ".bin") {
		t.Errorf("fileTimer produced %q", name)
	}
}
