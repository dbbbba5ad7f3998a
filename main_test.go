package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"RmBoard/internal/format"
)

const testID = "0b7c1f0e-3a6d-4f43-9d55-8a1c2b3d4e5f"

// encodePage writes a one-layer page with a single diagonal stroke.
func encodePage(brush, color uint32) []byte {
	buf := []byte(format.HeaderV5)
	u32 := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	f32 := func(v float32) { u32(math.Float32bits(v)) }

	u32(1) // layers
	u32(1) // lines
	u32(brush)
	u32(color)
	u32(0)
	f32(2)
	u32(0)
	u32(2) // points
	for _, xy := range [][2]float32{{0, 0}, {1404, 1872}} {
		f32(xy[0])
		f32(xy[1])
		for i := 0; i < 4; i++ {
			f32(0)
		}
	}
	return buf
}

func createNotebook(t *testing.T, pages ...[]byte) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), testID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for i, data := range pages {
		path := filepath.Join(dir, strconv.Itoa(i)+".rm")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("failed to create page file: %v", err)
		}
	}
	return dir
}

func testGlobals(t *testing.T) *Globals {
	t.Helper()
	return &Globals{Config: filepath.Join(t.TempDir(), "missing.yaml"), LogLevel: "error"}
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestGlobalsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rmboard.yaml")
	if err := os.WriteFile(cfgPath, []byte("page_size: Letter\nworkers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := (&Globals{Config: cfgPath}).setup()
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if e.size.Width != 612 || e.cfg.Workers != 2 {
		t.Errorf("file values not applied: %+v workers=%d", e.size, e.cfg.Workers)
	}

	e, err = (&Globals{Config: cfgPath, PageSize: "100x200", Workers: 4}).setup()
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if e.size.Width != 100 || e.size.Height != 200 || e.cfg.Workers != 4 {
		t.Errorf("flags did not override: %+v workers=%d", e.size, e.cfg.Workers)
	}

	if _, err := (&Globals{Config: cfgPath, LogLevel: "loud"}).setup(); err == nil {
		t.Error("setup() accepted an unknown log level")
	}
	if _, err := (&Globals{Config: cfgPath, Workers: -1}).setup(); err == nil {
		t.Error("setup() accepted negative workers")
	}
}

func TestDocumentTitle(t *testing.T) {
	d := DocumentArgs{Root: filepath.Join("notes", testID) + "/"}
	if got := d.title(); got != testID {
		t.Errorf("title() = %q, want %q", got, testID)
	}
	d = DocumentArgs{Root: "notes/scratch"}
	if got := d.title(); got != "scratch" {
		t.Errorf("title() = %q, want scratch", got)
	}
}

func TestConvertCmd(t *testing.T) {
	root := createNotebook(t, encodePage(15, 0), encodePage(15, 1))
	outPath := filepath.Join(t.TempDir(), "notes.pdf")

	cmd := &ConvertCmd{DocumentArgs: DocumentArgs{Root: root}, Out: outPath, Compress: false}
	if err := cmd.Run(testGlobals(t), context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
	if n := bytes.Count(data, []byte("/Type /Page\n")); n != 2 {
		t.Errorf("PDF has %d pages, want 2", n)
	}
}

func TestConvertCmdLeavesNothingOnError(t *testing.T) {
	bad := encodePage(15, 7)
	root := createNotebook(t, encodePage(15, 0), bad)
	outPath := filepath.Join(t.TempDir(), "notes.pdf")

	cmd := &ConvertCmd{DocumentArgs: DocumentArgs{Root: root}, Out: outPath}
	err := cmd.Run(testGlobals(t), context.Background())
	if !errors.Is(err, format.ErrInvalidColorIndex) {
		t.Fatalf("Run() error = %v, want ErrInvalidColorIndex", err)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("output file was created for a failed run")
	}
}

func TestConvertCmdMissingPage(t *testing.T) {
	root := createNotebook(t, encodePage(15, 0))
	cmd := &ConvertCmd{DocumentArgs: DocumentArgs{Root: root, Pages: 3}, Out: filepath.Join(t.TempDir(), "x.pdf")}
	err := cmd.Run(testGlobals(t), context.Background())
	if !errors.Is(err, format.ErrMissingFile) {
		t.Errorf("Run() error = %v, want ErrMissingFile", err)
	}
}

func TestPNGCmd(t *testing.T) {
	root := createNotebook(t, encodePage(15, 0))
	dir := filepath.Join(t.TempDir(), "png")
	buf := captureOutput(t)

	cmd := &PNGCmd{DocumentArgs: DocumentArgs{Root: root}, Dir: dir, Width: 100}
	if err := cmd.Run(testGlobals(t), context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := filepath.Join(dir, "0.png")
	if strings.TrimSpace(buf.String()) != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestInspectCmd(t *testing.T) {
	root := createNotebook(t, encodePage(15, 0), encodePage(21, 2))
	buf := captureOutput(t)

	cmd := &InspectCmd{DocumentArgs: DocumentArgs{Root: root}, Verbose: true}
	if err := cmd.Run(testGlobals(t), context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"document " + testID + ": 2 pages",
		"page 0: reMarkable .lines file, version=5, 1 layers, 1 lines, 2 points, ink 0,0 1404x1872",
		"color=white",
		"caps={width}",
		"unknown brush types: 21",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestInspectCmdEmptyDirectory(t *testing.T) {
	root := createNotebook(t)
	cmd := &InspectCmd{DocumentArgs: DocumentArgs{Root: root}}
	if err := cmd.Run(testGlobals(t), context.Background()); err == nil {
		t.Error("Run() succeeded on a directory without pages")
	}
}

func TestVersionCmd(t *testing.T) {
	buf := captureOutput(t)
	if err := (&VersionCmd{}).Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), version) {
		t.Errorf("output = %q", buf.String())
	}
}
