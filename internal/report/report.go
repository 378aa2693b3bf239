// Package report renders a session's posture timeline as a
// self-contained HTML chart.
package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/poselab/posturewatch/internal/stats"
)

// WriteHTML renders the per-frame flagged fractions as a line chart
// and writes it to path.
func WriteHTML(path string, timeline []stats.FramePoint) error {
	frames := make([]string, len(timeline))
	folded := make([]opts.LineData, len(timeline))
	leaning := make([]opts.LineData, len(timeline))
	touched := make([]opts.LineData, len(timeline))
	for i, point := range timeline {
		frames[i] = strconv.Itoa(point.Frame)
		folded[i] = opts.LineData{Value: point.ArmsFolded}
		leaning[i] = opts.LineData{Value: point.IsLeaning}
		touched[i] = opts.LineData{Value: point.FaceTouched}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Posture Timeline",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Posture signals per frame",
			Subtitle: fmt.Sprintf("frames=%d", len(timeline)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "flagged fraction", Min: 0, Max: 1}),
	)

	line.SetXAxis(frames).
		AddSeries("arms folded", folded).
		AddSeries("leaning", leaning).
		AddSeries("touching face", touched)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return fmt.Errorf("report: render chart: %w", err)
	}
	return nil
}
