package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// PixelStats is one accumulation cell: the running color sum and sample count
type PixelStats struct {
	ColorAccum  core.Vec3
	SampleCount int
}

// AddSample adds a color sample. Non-finite samples count as black.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if color.IsFinite() {
		ps.ColorAccum = ps.ColorAccum.Add(color)
	}
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// RenderStats summarizes the accumulation buffer
type RenderStats struct {
	Width, Height  int
	TotalPixels    int     // Total number of pixels
	TotalSamples   int     // Samples accumulated since the last reset
	AverageSamples float64 // Average samples per pixel
	MinSamples     int     // Fewest samples of any pixel
	MaxSamplesUsed int     // Most samples of any pixel
	Progress       float64
}

// BenchmarkResult is one row of a backend comparison
type BenchmarkResult struct {
	Name    string
	Stats   RenderStats
	Frames  int
	Elapsed time.Duration
}

// SamplesPerSecond returns the sample throughput
func (b BenchmarkResult) SamplesPerSecond() float64 {
	if b.Elapsed <= 0 {
		return 0
	}
	return float64(b.Stats.TotalSamples) / b.Elapsed.Seconds()
}

// FormatStatsTable renders results as a text table
func FormatStatsTable(results []BenchmarkResult) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Run", "Resolution", "Frames", "Samples", "Avg spp", "Progress", "Time", "Samples/s"})
	for _, r := range results {
		table.Append([]string{
			r.Name,
			fmt.Sprintf("%dx%d", r.Stats.Width, r.Stats.Height),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%d", r.Stats.TotalSamples),
			fmt.Sprintf("%.2f", r.Stats.AverageSamples),
			fmt.Sprintf("%.1f %%", r.Stats.Progress*100),
			r.Elapsed.Round(time.Millisecond).String(),
			fmt.Sprintf("%.0f", r.SamplesPerSecond()),
		})
	}
	table.Render()
	return buf.String()
}

// AverageLuminance returns the mean Rec. 709 luminance of an RGBA8 buffer in [0,1]
func AverageLuminance(rgba []byte) float64 {
	pixels := len(rgba) / 4
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for i := 0; i < pixels; i++ {
		c := core.NewVec3(float64(rgba[4*i]), float64(rgba[4*i+1]), float64(rgba[4*i+2]))
		total += c.Luminance() / 255.0
	}
	return total / float64(pixels)
}
