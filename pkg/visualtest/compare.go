// Package visualtest renders scripts to images and compares them, for tests
// that assert two trees look the same.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	// MaxDifference is the largest channel difference found (0-255).
	MaxDifference int
	// Diff marks mismatching pixels red over a greyscale copy of actual.
	// Only set when CompareOptions.Diff is true.
	Diff *image.RGBA
}

// CompareOptions configures the image comparison.
type CompareOptions struct {
	// Tolerance is the maximum allowed difference per color channel.
	Tolerance int
	// FuzzyRadius lets a pixel match any expected pixel within this radius.
	FuzzyRadius int
	// MaxDifferentPercent passes the comparison when no more than this
	// share of pixels differ.
	MaxDifferentPercent float64
	Diff                bool
}

func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// Compare compares two images pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}
	result := &CompareResult{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.Diff {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			diff := pixelDiff(actual.At(x, y), expected.At(x, y))
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}
			ok := diff <= opts.Tolerance
			if !ok && opts.FuzzyRadius > 0 {
				ok = fuzzyMatch(actual, expected, x, y, opts.FuzzyRadius, opts.Tolerance)
			}
			if !ok {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if ok {
					gray := color.GrayModel.Convert(actual.At(x, y)).(color.Gray).Y
					result.Diff.Set(x, y, color.RGBA{gray, gray, gray, 255})
				} else {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		if pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100; pct <= opts.MaxDifferentPercent {
			result.Match = true
		}
	}
	return result, nil
}

// CompareFiles decodes two PNG files and compares them.
func CompareFiles(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// pixelDiff returns the largest 8-bit channel difference between a and b.
func pixelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absInt(int(ar>>8)-int(br>>8)),
		absInt(int(ag>>8)-int(bg>>8)),
		absInt(int(ab>>8)-int(bb>>8)),
		absInt(int(aa>>8)-int(ba>>8)),
	)
}

func fuzzyMatch(actual, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := actual.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if pixelDiff(actual.At(x, y), expected.At(p.X, p.Y)) <= tolerance {
				return true
			}
		}
	}
	return false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
