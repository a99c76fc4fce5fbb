package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Gob tracks Records and saves them as a gob encoded []Record
type Gob struct {
	records  []Record
	filename string
}

// NewGob returns a new Gob Tracker which will save its data at the
// specified location filename
func NewGob(filename string) *Gob {
	return &Gob{filename: filename}
}

// Track caches r for saving later
func (g *Gob) Track(r Record) {
	g.records = append(g.records, r)
}

// Save saves the tracked Records to disk
func (g *Gob) Save() error {
	return g.SaveAs(g.filename)
}

// SaveAs saves the Records tracked so far to filename
func (g *Gob) SaveAs(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(g.records); err != nil {
		return fmt.Errorf("save: could not encode records: %v", err)
	}
	return file.Close()
}

// Len returns the number of Records tracked
func (g *Gob) Len() int {
	return len(g.records)
}

// LoadGob loads and returns the Records saved by a Gob Tracker
func LoadGob(filename string) ([]Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadGob: could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []Record

	if err = dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("loadGob: could not decode data: %v", err)
	}
	return data, nil
}
