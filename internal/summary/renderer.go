package summary

import (
	"bytes"
	"context"
	"countrycache/internal/adapters"
	"countrycache/internal/domain"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	width    = 900
	height   = 600
	margin   = 40
	flagSize = 48
	rowStep  = 64
	maxRows  = 5

	LatestFileName = "summary.png"
	archiveLayout  = "2006-01-02T15-04-05-000Z"
)

// Renderer draws the refresh summary PNG. Flags are optional decoration: a flag that
// cannot be fetched is skipped and the row is still drawn.
type Renderer struct {
	flags     adapters.FlagClient
	flagCache adapters.FlagCache
	outputDir string
	font      *opentype.Font
	now       func() time.Time
}

// Publish renders the summary, stores it as summary.png (overwritten) plus a
// timestamped archive copy, and returns the PNG bytes.
func (r *Renderer) Publish(ctx context.Context, s domain.Summary) ([]byte, error) {
	img, err := r.Render(ctx, s)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	archiveName := fmt.Sprintf("summary_%s.png", r.now().UTC().Format(archiveLayout))
	if err = writeFileAtomic(filepath.Join(r.outputDir, archiveName), img); err != nil {
		return nil, err
	}
	if err = writeFileAtomic(filepath.Join(r.outputDir, LatestFileName), img); err != nil {
		return nil, err
	}
	return img, nil
}

// Render draws the summary and returns it PNG encoded.
func (r *Renderer) Render(ctx context.Context, s domain.Summary) ([]byte, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("failed to load font face: %w", err)
	}
	defer face.Close()

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	text := func(x, y int, s string) {
		d := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.Black), Face: face, Dot: fixed.P(x, y)}
		d.DrawString(s)
	}

	text(margin, 60, "Countries Summary")
	text(margin, 110, fmt.Sprintf("Total countries: %d", s.Total))
	text(margin, 150, "Last refreshed: "+domain.FormatTimestamp(s.RefreshedAt))
	text(margin, 200, "Top 5 countries by estimated GDP:")

	printer := message.NewPrinter(language.English)
	y := 240
	for i, c := range s.Top {
		if i == maxRows {
			break
		}
		if flag := r.flag(ctx, c); flag != nil {
			rect := image.Rect(margin, y-flagSize/2, margin+flagSize, y+flagSize/2)
			xdraw.ApproxBiLinear.Scale(canvas, rect, flag, flag.Bounds(), xdraw.Over, nil)
		}
		text(margin+flagSize+16, y, fmt.Sprintf("%d. %s - %s", i+1, c.Name, FormatGDP(printer, c.EstimatedGDP)))
		y += rowStep
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) flag(ctx context.Context, c domain.Country) image.Image {
	if c.FlagURL == nil || *c.FlagURL == "" {
		return nil
	}
	if r.flagCache != nil {
		if img, ok := r.flagCache.Get(*c.FlagURL); ok {
			return img
		}
	}
	img, err := r.flags.GetFlag(ctx, *c.FlagURL)
	if err != nil {
		logrus.Warnf("Failed to load flag for %s: %v", c.Name, err)
		return nil
	}
	if r.flagCache != nil {
		r.flagCache.Set(*c.FlagURL, img)
	}
	return img
}

// FormatGDP groups thousands and keeps at most two fraction digits. Nil is "N/A".
func FormatGDP(printer *message.Printer, gdp *float64) string {
	if gdp == nil {
		return "N/A"
	}
	s := printer.Sprintf("%.2f", *gdp)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".summary-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move summary into %s: %w", path, err)
	}
	return nil
}

func NewRenderer(flags adapters.FlagClient, flagCache adapters.FlagCache, outputDir string) (*Renderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Renderer{
		flags:     flags,
		flagCache: flagCache,
		outputDir: outputDir,
		font:      f,
		now:       time.Now,
	}, nil
}
