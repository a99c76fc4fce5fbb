package tracker

import (
	"path/filepath"
	"reflect"
	"testing"
)

func records() []Record {
	return []Record{
		{
			RunID: "run", World: "RiverSwim", Param: "width", Value: 5,
			Gamma: 0.9, Prob: 0.4, StartState: 2, StartAction: 1,
			StartValue: 3.5, Sweeps: 42,
			Policy: []int32{1, 1, 0, 1, 1}, V: []float64{1, 2, 3.5, 4, 5},
		},
		{
			RunID: "run", World: "RiverSwim", Param: "big_r", Value: 3,
			Gamma: 0.5, Prob: 0.99, StartState: 2, StartAction: 0,
			StartValue: 0.25, Sweeps: 7,
			Policy: []int32{0, 0, 0, 0, 0}, V: []float64{1, 0, 0.25, 0, 3},
		},
	}
}

func TestGob(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "records.bin")
	g := NewGob(filename)

	want := records()
	for _, r := range want {
		g.Track(r)
	}
	if g.Len() != len(want) {
		t.Errorf("len = %d, want %d", g.Len(), len(want))
	}
	if err := g.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadGob(filename)
	if err != nil {
		t.Fatalf("loadGob: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded %v, want %v", got, want)
	}

	if _, err := LoadGob(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("loadGob on a missing file: expected error")
	}
}

func TestParquet(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out", "records.parquet")
	p := NewParquet(filename)

	want := records()
	for _, r := range want {
		p.Track(r)
	}
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadParquet(filename)
	if err != nil {
		t.Fatalf("loadParquet: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Param != want[i].Param || got[i].Value != want[i].Value ||
			got[i].StartAction != want[i].StartAction ||
			!reflect.DeepEqual(got[i].Policy, want[i].Policy) ||
			!reflect.DeepEqual(got[i].V, want[i].V) {
			t.Errorf("record %d: loaded %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRegister(t *testing.T) {
	g := NewGob(filepath.Join(t.TempDir(), "records.bin"))
	width := Register(g, "width")

	for _, r := range records() {
		width.Track(r)
	}
	if g.Len() != 1 {
		t.Errorf("tracked %d records, want only the width record", g.Len())
	}
	if err := width.Save(); err != nil {
		t.Errorf("save: %v", err)
	}
}
