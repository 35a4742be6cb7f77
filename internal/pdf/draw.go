package pdf

import (
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/estate-offers/internal/model"
)

type RGB struct {
	R int
	G int
	B int
}

// defaultAccent matches model.DefaultAgency().AccentColor.
var defaultAccent = RGB{R: 193, G: 39, B: 45}

// RenderContext carries the per-call rendering state into every slide
// function, instead of accumulating it on the generator.
type RenderContext struct {
	Font   string
	Accent RGB
	Agency model.Agency
	Now    time.Time
}

// DrawError reports one image that could not be painted. The slide keeps
// rendering with a placeholder; the error exists so callers and tests can
// see which assets were dropped.
type DrawError struct {
	Ref    string
	Reason string
}

func (e DrawError) Error() string {
	return fmt.Sprintf("draw %s: %s", e.Ref, e.Reason)
}

func parseHexColor(value string) RGB {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(value) != 6 {
		return defaultAccent
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return defaultAccent
	}
	return RGB{
		R: int(parsed >> 16 & 0xFF),
		G: int(parsed >> 8 & 0xFF),
		B: int(parsed & 0xFF),
	}
}

// drawImageFit paints data inside box, scaled to fit and centered, keeping
// the aspect ratio. Undecodable bytes come back as a DrawError and nothing
// is painted.
func drawImageFit(doc *gofpdf.Fpdf, ref string, data []byte, box Rect) *DrawError {
	if len(data) == 0 {
		return &DrawError{Ref: ref, Reason: "no data"}
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return &DrawError{Ref: ref, Reason: "undecodable image"}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &DrawError{Ref: ref, Reason: "empty image"}
	}

	scale := box.W / float64(cfg.Width)
	if h := box.H / float64(cfg.Height); h < scale {
		scale = h
	}
	w := float64(cfg.Width) * scale
	h := float64(cfg.Height) * scale
	x := box.X + (box.W-w)/2
	y := box.Y + (box.H-h)/2

	opts := gofpdf.ImageOptions{ImageType: format, ReadDpi: false}
	if doc.GetImageInfo(ref) == nil {
		doc.RegisterImageOptionsReader(ref, opts, bytes.NewReader(data))
		if doc.Err() {
			// gofpdf rejected bytes that image.DecodeConfig accepted.
			doc.ClearError()
			return &DrawError{Ref: ref, Reason: "image registration failed"}
		}
	}
	doc.ImageOptions(ref, x, y, w, h, false, opts, 0, "")
	return nil
}

// drawPlaceholder fills box with a labeled neutral panel used wherever an
// image failed to resolve or paint.
func drawPlaceholder(doc *gofpdf.Fpdf, rc *RenderContext, box Rect, label string) {
	doc.SetFillColor(235, 235, 235)
	doc.SetDrawColor(200, 200, 200)
	doc.Rect(box.X, box.Y, box.W, box.H, "FD")
	doc.SetTextColor(130, 130, 130)
	doc.SetFont(rc.Font, "", 11)
	doc.SetXY(box.X, box.Y+box.H/2-6)
	doc.CellFormat(box.W, 12, label, "", 0, "C", false, 0, "")
}

// drawImageOrPlaceholder is the fail-soft draw used by every slide: a draw
// failure becomes a placeholder, never an abort.
func drawImageOrPlaceholder(doc *gofpdf.Fpdf, rc *RenderContext, ref string, data []byte, box Rect, label string) *DrawError {
	err := drawImageFit(doc, ref, data, box)
	if err != nil {
		drawPlaceholder(doc, rc, box, label)
	}
	return err
}

func formatThousands(value float64) string {
	raw := strconv.FormatInt(int64(value+0.5), 10)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	var parts []string
	for len(raw) > 3 {
		parts = append([]string{raw[len(raw)-3:]}, parts...)
		raw = raw[:len(raw)-3]
	}
	parts = append([]string{raw}, parts...)
	out := strings.Join(parts, ".")
	if negative {
		out = "-" + out
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
