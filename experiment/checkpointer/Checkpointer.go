// Package checkpointer implements checkpointing of partially completed
// parameter sweeps
package checkpointer

import (
	"fmt"
	"time"
)

// Serializable is an object that can be saved to a file
type Serializable interface {
	SaveAs(filename string) error
}

// Checkpointer checkpoints/saves Serializable objects based on the
// number of completed sweep cells
type Checkpointer interface {
	Checkpoint(completed int) error
}

// FileTimer returns a function which will append to a filename the
// number of nanoseconds since January 1, 1970.
func FileTimer(filename, extension string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", filename, time.Now().UnixNano(),
			extension)
	}
}

// FilenameEnumerator returns a function returning filename followed by
// a counter and extension. The counter of the first returned name is
// start+1, and each call increments it.
func FilenameEnumerator(start int, filename, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", filename, i, extension)
	}
}
