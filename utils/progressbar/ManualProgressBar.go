// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed to the screen.
//
// Increment and Display may be called from multiple goroutines.
type ManualProgressBar struct {
	mu              sync.Mutex
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar which writes to
// out, is width characters wide, and is full after max increments
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		out:             out,
		width:           float64(width),
		maxProgress:     float64(max),
		currentProgress: 0,
		startTime:       time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the number of increments so far
func (p *ManualProgressBar) Progress() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.currentProgress)
}

// Display redraws the progress bar in place
func (p *ManualProgressBar) Display() {
	p.mu.Lock()
	defer p.mu.Unlock()

	fraction := 1.0
	if p.maxProgress > 0 {
		fraction = p.currentProgress / p.maxProgress
	}

	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := fraction * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
		fraction*100, "%", time.Since(p.startTime).Truncate(time.Second)))

	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.bar.String())
}

// Close finishes the progress bar by moving to the next line
func (p *ManualProgressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}
