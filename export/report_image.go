package export

import (
	"bytes"
	"fmt"
	"time"

	"salespoint/models"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// ReportStyle defines the layout of the report card
type ReportStyle struct {
	Width     int
	Padding   int
	RowHeight int
	BarHeight int
}

// ReportRenderer draws a dashboard as a PNG report card
type ReportRenderer struct {
	style    ReportStyle
	regular  []byte
	headline []byte
}

// NewReportRenderer creates a renderer. fontData replaces the built-in Go
// fonts, which have no Hangul glyphs; pass nil to use them anyway.
func NewReportRenderer(fontData []byte) *ReportRenderer {
	r := &ReportRenderer{
		style: ReportStyle{
			Width:     460,
			Padding:   18,
			RowHeight: 22,
			BarHeight: 14,
		},
		regular:  gomono.TTF,
		headline: gobold.TTF,
	}
	if len(fontData) > 0 {
		r.regular = fontData
		r.headline = fontData
	}
	return r
}

// feedbackColor maps a feedback tier to an RGB triple
func feedbackColor(level models.FeedbackLevel) (float64, float64, float64) {
	switch level {
	case models.FeedbackGood:
		return 0.34, 0.95, 0.53
	case models.FeedbackWarning:
		return 1.0, 0.91, 0.36
	default:
		return 0.93, 0.26, 0.27
	}
}

func pacingColor(status models.PacingStatus) (float64, float64, float64) {
	switch status {
	case models.PacingAhead:
		return 0.34, 0.95, 0.53
	case models.PacingOnTrack:
		return 0.2, 0.6, 0.86
	case models.PacingBehind:
		return 0.93, 0.26, 0.27
	default:
		return 0.6, 0.6, 0.6
	}
}

// Render draws the report card for dashboard
func (r *ReportRenderer) Render(dashboard *models.Dashboard) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("team", dashboard.Team).
			Debug("Report image generation completed")
	}()

	s := dashboard.Summary
	lines := []struct {
		label string
		value string
	}{
		{"Calls", fmt.Sprintf("%d", s.TotalCalls)},
		{"Successes", fmt.Sprintf("%d / goal %.1f", s.TotalSuccesses, s.DailyGoal)},
		{"Predicted", fmt.Sprintf("%.1f (%.1f%%)", s.PredictedSuccesses, s.PredictedAchievement)},
		{"Mention rate", fmt.Sprintf("%.1f%%", s.MentionRate)},
		{"Active attempt", fmt.Sprintf("%.1f%%", s.ActiveAttemptRate)},
		{"STT mention", fmt.Sprintf("%.1f%%", s.SpeechMentionRate)},
		{"Activations", fmt.Sprintf("%d (%.1f%%)", s.TotalActivations, s.ActivationRate)},
	}

	st := r.style
	height := st.Padding*2 + 40 + (len(lines)+len(s.Products)+len(dashboard.Pacing))*st.RowHeight + st.BarHeight + 70

	dc := gg.NewContext(st.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(st.Width), float64(i))
		dc.Stroke()
	}

	titleFace, err := loadFont(r.headline, 15)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	face, err := loadFont(r.regular, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	pad := float64(st.Padding)
	y := pad + 14

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	drawSharpText(dc, fmt.Sprintf("%s  %s  (%s)", dashboard.Team, dashboard.Date.Format("2006-01-02"), s.LastCheckpoint), pad, y)

	y += 16
	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y, float64(st.Width), y)
	dc.Stroke()

	// predicted achievement bar, capped at the card width
	y += 14
	barWidth := float64(st.Width) - pad*2
	dc.SetRGBA(0.3, 0.3, 0.4, 0.5)
	dc.DrawRectangle(pad, y, barWidth, float64(st.BarHeight))
	dc.Fill()
	fill := s.PredictedAchievement / 100
	if fill > 1 {
		fill = 1
	}
	if fill > 0 {
		cr, cg, cb := feedbackColor(dashboard.Feedback)
		dc.SetRGB(cr, cg, cb)
		dc.DrawRectangle(pad, y, barWidth*fill, float64(st.BarHeight))
		dc.Fill()
	}

	y += float64(st.BarHeight) + 26
	dc.SetFontFace(face)
	for _, line := range lines {
		dc.SetRGB(0.85, 0.85, 0.9)
		drawSharpText(dc, line.label, pad, y)
		dc.SetRGB(1, 1, 1)
		drawSharpText(dc, line.value, pad+170, y)
		y += float64(st.RowHeight)
	}

	for _, p := range s.Products {
		dc.SetRGB(0.85, 1.0, 0.85)
		drawSharpText(dc, p.Name, pad, y)
		dc.SetRGB(1, 1, 1)
		drawSharpText(dc, fmt.Sprintf("%d / %.1f  -> %.1f%%", p.TotalSuccesses, p.DailyGoal, p.PredictedAchievement), pad+170, y)
		y += float64(st.RowHeight)
	}

	for _, track := range dashboard.Pacing {
		cr, cg, cb := pacingColor(track.Status)
		dc.SetRGB(cr, cg, cb)
		dc.DrawCircle(pad+4, y-4, 4)
		dc.Fill()
		dc.SetRGB(0.85, 0.85, 0.9)
		drawSharpText(dc, string(track.Name), pad+14, y)
		drawSharpText(dc, fmt.Sprintf("%.1f%% vs %.1f%%  %s", track.CompletionPct, track.ExpectedProgress, track.Status), pad+170, y)
		y += float64(st.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()
	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	}), nil
}
