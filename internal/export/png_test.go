package export

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"RmBoard/internal/state"
)

func thickDiagonalDoc(pages int) *state.Document {
	out := make([]state.Page, pages)
	for i := range out {
		out[i] = state.Page{Layers: []state.Layer{{Lines: []state.Line{{
			BrushType: 15,
			Color:     state.ColorBlack,
			BrushSize: 40,
			Points:    []state.Point{{X: 0, Y: 0}, {X: 1404, Y: 1872}},
		}}}}}
	}
	return state.NewDocument(out)
}

func TestPNGCanvas(t *testing.T) {
	dir := t.TempDir()
	c := NewPNGCanvas(dir, A4, 300, RGB{1, 1, 1})
	if err := NewRenderer(c, A4).Render(context.Background(), thickDiagonalDoc(2)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	files := c.Files()
	if len(files) != 2 {
		t.Fatalf("Files() = %v, want 2 files", files)
	}
	if files[1] != filepath.Join(dir, "1.png") {
		t.Errorf("second file = %s", files[1])
	}

	f, err := os.Open(files[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if w := img.Bounds().Dx(); w != 300 {
		t.Errorf("width = %d, want 300", w)
	}

	// the corner pixel stays background, the page centre lies on the diagonal stroke
	r, g, b, _ := img.At(img.Bounds().Dx()-1, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("corner pixel = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
	cx, cy := img.Bounds().Dx()/2, img.Bounds().Dy()/2
	r, _, _, _ = img.At(cx, cy).RGBA()
	if r>>8 > 64 {
		t.Errorf("centre pixel red = %d, want a dark stroke", r>>8)
	}
}

func TestPNGCanvasPageState(t *testing.T) {
	c := NewPNGCanvas(t.TempDir(), A5, 100, RGB{1, 1, 1})
	if err := c.EndPage(); err == nil {
		t.Error("EndPage() without BeginPage() should fail")
	}
	if err := c.BeginPage(); err != nil {
		t.Fatal(err)
	}
	if err := c.BeginPage(); err == nil {
		t.Error("nested BeginPage() should fail")
	}
}
