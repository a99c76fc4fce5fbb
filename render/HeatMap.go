package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/experiment/tracker"
)

// Metric selects which result of a sweep cell is plotted
type Metric int

const (
	StartAction Metric = iota
	StartValue
	Sweeps
)

func (m Metric) String() string {
	switch m {
	case StartAction:
		return "start action"
	case StartValue:
		return "start value"
	case Sweeps:
		return "sweeps"
	}
	panic(fmt.Sprintf("string: unknown metric %d", int(m)))
}

// of returns the metric of a Record
func (m Metric) of(r tracker.Record) float64 {
	switch m {
	case StartAction:
		return float64(r.StartAction)
	case StartValue:
		return r.StartValue
	case Sweeps:
		return float64(r.Sweeps)
	}
	panic(fmt.Sprintf("of: unknown metric %d", int(m)))
}

var heatColours = []string{"#313695", "#74add1", "#fee090", "#f46d43",
	"#a50026"}

// group is the set of records sharing a parameter value
type group struct {
	param   string
	value   float64
	records []tracker.Record
}

// SweepPage renders one heat map per swept parameter value to w, each
// plotting metric over the probabilities (x axis) and discount factors
// (y axis) of the sweep. All heat maps share a colour scale.
func SweepPage(title string, records []tracker.Record, metric Metric,
	w io.Writer) error {
	if len(records) == 0 {
		return fmt.Errorf("sweepPage: no records to plot")
	}

	var groups []*group
	index := make(map[string]*group)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		key := fmt.Sprintf("%s=%v", r.Param, r.Value)
		g, ok := index[key]
		if !ok {
			g = &group{param: r.Param, value: r.Value}
			index[key] = g
			groups = append(groups, g)
		}
		g.records = append(g.records, r)

		v := metric.of(r)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	page := components.NewPage()
	page.PageTitle = title
	for _, g := range groups {
		name := fmt.Sprintf("%s: %v = %v", title, g.param, g.value)
		if g.param == "" {
			name = title
		}
		page.AddCharts(sweepHeatMap(name, g.records, metric, lo, hi))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("sweepPage: %v", err)
	}
	return nil
}

func sweepHeatMap(name string, records []tracker.Record, metric Metric,
	lo, hi float64) *charts.HeatMap {
	probs := uniqueSorted(records, func(r tracker.Record) float64 {
		return r.Prob
	})
	gammas := uniqueSorted(records, func(r tracker.Record) float64 {
		return r.Gamma
	})

	data := make([]opts.HeatMapData, 0, len(records))
	for _, r := range records {
		x := sort.SearchFloat64s(probs, r.Prob)
		y := sort.SearchFloat64s(gammas, r.Gamma)
		data = append(data, opts.HeatMapData{
			Value: [3]interface{}{x, y, metric.of(r)},
		})
	}

	hm := newHeatMap(name, axis{"prob", axisLabels(probs)},
		axis{"gamma", axisLabels(gammas)}, lo, hi)
	hm.AddSeries(metric.String(), data)
	return hm
}

// ValueHeatMap renders the value of each state of w as a heat map laid
// out on the grid of w, row 0 at the top
func ValueHeatMap(title string, w env.World, v []float64,
	out io.Writer) error {
	if err := gridHeatMap(title, w, v, out); err != nil {
		return fmt.Errorf("valueHeatMap: %v", err)
	}
	return nil
}

// RewardHeatMap renders the reward of each state of a world that
// describes its rewards per state, laid out on the grid of w
func RewardHeatMap(title string, w env.World, rewards map[int]float64,
	out io.Writer) error {
	r := make([]float64, w.NumStates())
	for s, reward := range rewards {
		if s >= 0 && s < len(r) {
			r[s] = reward
		}
	}

	if err := gridHeatMap(title, w, r, out); err != nil {
		return fmt.Errorf("rewardHeatMap: %v", err)
	}
	return nil
}

func gridHeatMap(title string, w env.World, v []float64,
	out io.Writer) error {
	rows, cols, err := checkGrid(w, len(v))
	if err != nil {
		return err
	}

	xs := make([]string, cols)
	for x := range xs {
		xs[x] = fmt.Sprint(x)
	}

	// Category axes start at the bottom, so rows are listed in reverse
	ys := make([]string, rows)
	for i := range ys {
		ys[i] = fmt.Sprint(rows - 1 - i)
	}

	data := make([]opts.HeatMapData, 0, len(v))
	for s, value := range v {
		x, y := s%cols, s/cols
		data = append(data, opts.HeatMapData{
			Value: [3]interface{}{x, rows - 1 - y, value},
		})
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, value := range v {
		lo = math.Min(lo, value)
		hi = math.Max(hi, value)
	}

	hm := newHeatMap(title, axis{"x", xs}, axis{"y", ys}, lo, hi)
	hm.AddSeries(w.String(), data)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(hm)
	return page.Render(out)
}

// axis is a named category axis of a heat map
type axis struct {
	name   string
	labels []string
}

func newHeatMap(title string, x, y axis, lo, hi float64) *charts.HeatMap {
	if lo == hi {
		hi = lo + 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      x.name,
			Type:      "category",
			Data:      x.labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      y.name,
			Type:      "category",
			Data:      y.labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: heatColours},
		}),
	)
	return hm
}

func uniqueSorted(records []tracker.Record,
	field func(tracker.Record) float64) []float64 {
	seen := make(map[float64]bool)
	var values []float64
	for _, r := range records {
		v := field(r)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

func axisLabels(values []float64) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprintf("%.2f", v)
	}
	return labels
}
