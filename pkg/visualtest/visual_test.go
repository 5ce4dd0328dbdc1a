package visualtest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func assertSameRendering(t *testing.T, actualSrc, expectedSrc string) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	actual, err := RenderScript(actualSrc, 240, 160, logger)
	require.NoError(t, err)
	expected, err := RenderScript(expectedSrc, 240, 160, logger)
	require.NoError(t, err)

	res, err := Compare(actual, expected, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match, "%d of %d pixels differ (max %d)", res.DifferentPixels, res.TotalPixels, res.MaxDifference)
}

func TestInheritedColorMatchesExplicitColor(t *testing.T) {
	assertSameRendering(t, `
		ui.root.style.color = "red";
		var mid = ui.createElement("view");
		mid.setParent(ui.root);
		var leaf = ui.createElement("text");
		leaf.text = "inherit";
		leaf.setParent(mid);
	`, `
		var mid = ui.createElement("view");
		mid.setParent(ui.root);
		var leaf = ui.createElement("text");
		leaf.text = "inherit";
		leaf.style.color = "red";
		leaf.setParent(mid);
	`)
}

func TestReparentedTreeMatchesDirectTree(t *testing.T) {
	assertSameRendering(t, `
		var a = ui.createElement("view");
		a.style.backgroundColor = "blue";
		a.layout.height = 40;
		var b = ui.createElement("view");
		b.style.backgroundColor = "green";
		b.layout.height = 40;
		a.setParent(ui.root);
		b.setParent(ui.root);
		a.setParent(ui.root);
	`, `
		var b = ui.createElement("view");
		b.style.backgroundColor = "green";
		b.layout.height = 40;
		b.setParent(ui.root);
		var a = ui.createElement("view");
		a.style.backgroundColor = "blue";
		a.layout.height = 40;
		a.setParent(ui.root);
	`)
}

func TestRemovedNodeIsNotPainted(t *testing.T) {
	assertSameRendering(t, `
		var gone = ui.createElement("view");
		gone.style.backgroundColor = "black";
		gone.layout.height = 80;
		gone.setParent(ui.root);
		gone.remove();
	`, `/* empty */`)
}

func TestCompareReportsDifferences(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b.Set(1, 1, color.RGBA{200, 0, 0, 255})

	res, err := Compare(a, b, CompareOptions{Diff: true})
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, 1, res.DifferentPixels)
	assert.Equal(t, 255, res.MaxDifference)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, res.Diff.RGBAAt(1, 1))

	res, err = Compare(a, b, CompareOptions{FuzzyRadius: 1})
	require.NoError(t, err)
	assert.True(t, res.Match, "a neighbouring pixel matches")

	res, err = Compare(a, b, CompareOptions{MaxDifferentPercent: 10})
	require.NoError(t, err)
	assert.True(t, res.Match, "1 of 16 pixels is within 10 percent")

	_, err = Compare(a, image.NewRGBA(image.Rect(0, 0, 2, 2)), DefaultOptions())
	assert.Error(t, err)
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for _, name := range []string{"a.png", "b.png"} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
	res, err := CompareFiles(filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)

	_, err = CompareFiles(filepath.Join(dir, "missing.png"), filepath.Join(dir, "b.png"), DefaultOptions())
	assert.Error(t, err)
}
