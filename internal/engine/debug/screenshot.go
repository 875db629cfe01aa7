// Package debug provides screenshot capture for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Supported screenshot formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// ScreenshotCapture writes timestamped captures into a directory.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler. An unknown format falls
// back to PNG.
func NewScreenshotCapture(outputDir, prefix, format string) *ScreenshotCapture {
	format = strings.ToLower(format)
	if format != FormatWebP {
		format = FormatPNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// GenerateFilename returns the path the next capture will be written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// Capture saves img under a generated name and returns the path.
func (sc *ScreenshotCapture) Capture(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := sc.GenerateFilename()
	if err := SaveImage(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// SaveImage writes img to path, picking the encoder from the extension.
// Anything but .webp is written as PNG. A failed encode leaves no file.
func SaveImage(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := Encode(file, img, FormatFor(path)); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// FormatFor returns the format implied by a file name.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return FormatWebP
	}
	return FormatPNG
}

// Encode writes img as PNG or lossless WebP.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}
