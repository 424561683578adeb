package stats

import (
	"fmt"
	"math"

	"github.com/shire-forum/shire/internal/models"
)

// OtherLabel collects values outside the fixed enumerations
const OtherLabel = "Other"

// Slice is one labelled share of a dimension
type Slice struct {
	Label   string
	Count   int
	Percent float64
}

// Dimension is the breakdown of users along one trait
type Dimension struct {
	Name   string
	Slices []Slice
	Chart  string
}

// Report is the demographic summary shown on the stats page
type Report struct {
	TotalUsers int
	Empty      bool
	Dimensions []Dimension
}

// Charter renders a dimension into an opaque, embeddable artifact
type Charter interface {
	Render(title string, slices []Slice) (string, error)
}

// Reporter turns raw demographic counts into percentages and charts
type Reporter struct {
	charter Charter
}

// NewReporter creates a reporter. A nil charter disables chart rendering.
func NewReporter(charter Charter) *Reporter {
	return &Reporter{charter: charter}
}

// Build computes the report for d. With no users the report is marked empty
// and carries no charts.
func (r *Reporter) Build(d models.Demographics) (Report, error) {
	report := Report{TotalUsers: d.Total, Empty: d.Total == 0}
	if report.Empty {
		return report, nil
	}

	dims := []Dimension{
		{Name: "Race", Slices: Breakdown(d.Total, d.Races, models.Races)},
		{Name: "Class", Slices: Breakdown(d.Total, d.Classes, models.Classes)},
		{Name: "Gender", Slices: Breakdown(d.Total, d.Genders, models.Genders)},
	}
	if r.charter != nil {
		for i := range dims {
			chart, err := r.charter.Render(dims[i].Name, dims[i].Slices)
			if err != nil {
				return Report{}, fmt.Errorf("render %s chart: %w", dims[i].Name, err)
			}
			dims[i].Chart = chart
		}
	}
	report.Dimensions = dims
	return report, nil
}

// Breakdown returns one slice per label in order, plus an Other slice when
// counts hold values outside labels. Percentages are rounded to one decimal.
func Breakdown(total int, counts map[string]int, labels []string) []Slice {
	slices := make([]Slice, 0, len(labels)+1)
	known := 0
	for _, label := range labels {
		n := counts[label]
		known += n
		slices = append(slices, Slice{Label: label, Count: n, Percent: percent(n, total)})
	}
	if other := total - known; other > 0 {
		slices = append(slices, Slice{Label: OtherLabel, Count: other, Percent: percent(other, total)})
	}
	return slices
}

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(n)*1000/float64(total)) / 10
}
