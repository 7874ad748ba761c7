package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
)

// Slice is one labeled wedge of the pie.
type Slice struct {
	Label string
	Value float64
}

// Renderer rasterizes the attack-type distribution as a pie chart. The font
// face for CJK labels is resolved once on first use and reused for every
// render.
type Renderer struct {
	fontOnce sync.Once
	fontPath string
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

const (
	chartWidth  = 800
	chartHeight = 600
	chartFile   = "attack_type_chart.png"
)

// fontCandidates are probed in priority order. All are common install
// locations for faces that can shape the report's CJK labels; the last entry
// is a Latin-only safety net.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttf",
	"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttf",
	"/usr/share/fonts/truetype/arphic/uming.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

var palette = [][3]float64{
	{0.26, 0.45, 0.76},
	{0.85, 0.37, 0.30},
	{0.94, 0.68, 0.23},
	{0.36, 0.64, 0.38},
	{0.55, 0.41, 0.69},
	{0.31, 0.69, 0.73},
	{0.78, 0.49, 0.26},
	{0.52, 0.52, 0.52},
}

// font resolves the label font path once. A missing or unparsable font is
// not an error: rendering proceeds with gg's built-in face.
func (r *Renderer) font() string {
	r.fontOnce.Do(func() {
		for _, path := range fontCandidates {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			// Probe with a throwaway context so a corrupt font file cannot
			// fail a real render later.
			probe := gg.NewContext(1, 1)
			if err := probe.LoadFontFace(path, 12); err == nil {
				r.fontPath = path
				return
			}
		}
	})
	return r.fontPath
}

func (r *Renderer) setFont(dc *gg.Context, points float64) {
	if path := r.font(); path != "" {
		if err := dc.LoadFontFace(path, points); err == nil {
			return
		}
	}
}

// Pie renders the slices to <dir>/attack_type_chart.png and returns the file
// path. The first slice is offset outward to highlight the leading attack
// type; percentage labels are drawn in white inside each wedge.
func (r *Renderer) Pie(slices []Slice, dir string) (string, error) {
	var total float64
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return "", fmt.Errorf("no positive values to chart")
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx := float64(chartWidth) / 2
	cy := float64(chartHeight)/2 + 20
	radius := math.Min(cx, cy) * 0.62

	angle := -math.Pi / 2
	drawn := 0
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		frac := s.Value / total
		next := angle + frac*2*math.Pi
		mid := (angle + next) / 2

		offset := radius * 0.01
		if drawn == 0 {
			offset = radius * 0.1
		}
		ox := cx + offset*math.Cos(mid)
		oy := cy + offset*math.Sin(mid)

		c := palette[drawn%len(palette)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.MoveTo(ox, oy)
		dc.DrawArc(ox, oy, radius, angle, next)
		dc.ClosePath()
		dc.Fill()

		r.setFont(dc, 14)
		dc.SetRGB(1, 1, 1)
		px := ox + 0.55*radius*math.Cos(mid)
		py := oy + 0.55*radius*math.Sin(mid)
		dc.DrawStringAnchored(fmt.Sprintf("%.2f%%", frac*100), px, py, 0.5, 0.5)

		dc.SetRGB(0.15, 0.15, 0.15)
		lx := ox + 1.12*radius*math.Cos(mid)
		ly := oy + 1.12*radius*math.Sin(mid)
		anchorX := 0.0
		if math.Cos(mid) < 0 {
			anchorX = 1.0
		}
		dc.DrawStringAnchored(truncateLabel(s.Label, 20), lx, ly, anchorX, 0.5)

		angle = next
		drawn++
	}

	r.setFont(dc, 22)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("攻击类型统计图", cx, 36, 0.5, 0.5)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart directory: %w", err)
	}
	path := filepath.Join(dir, chartFile)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save chart: %w", err)
	}
	return path, nil
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
