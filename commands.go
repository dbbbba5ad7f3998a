package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"RmBoard/internal/export"
	"RmBoard/internal/format"
	"RmBoard/internal/logging"
	preview "RmBoard/internal/net"
	"RmBoard/internal/state"
	"RmBoard/internal/ui"
)

// ConvertCmd renders a notebook to PDF.
type ConvertCmd struct {
	DocumentArgs
	Out      string `short:"o" required:"" help:"Output PDF path" type:"path"`
	Compress bool   `help:"Compress page streams" default:"true" negatable:""`
}

func (c *ConvertCmd) Run(g *Globals, ctx context.Context) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	doc, err := c.load(ctx, e)
	if err != nil {
		return err
	}
	opts := export.PDFOptions{
		Title:    c.title(),
		Creator:  "rmboard " + version,
		Compress: c.Compress,
	}
	if err := export.ExportPDF(ctx, c.Out, doc, e.size, opts); err != nil {
		return err
	}
	logging.Info("pdf written", "path", c.Out, "pages", doc.NumPages())
	return nil
}

// PNGCmd renders every page to its own PNG file.
type PNGCmd struct {
	DocumentArgs
	Dir   string `short:"d" required:"" help:"Output directory" type:"path"`
	Width int    `help:"Image width in pixels, overrides png.width"`
}

func (c *PNGCmd) Run(g *Globals, ctx context.Context) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	doc, err := c.load(ctx, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	width := e.cfg.PNG.Width
	if c.Width > 0 {
		width = c.Width
	}
	bg := e.cfg.PNG.Background
	canvas := export.NewPNGCanvas(c.Dir, e.size, width, export.RGB{R: bg[0], G: bg[1], B: bg[2]})
	if err := export.NewRenderer(canvas, e.size).Render(ctx, doc); err != nil {
		return err
	}
	for _, f := range canvas.Files() {
		fmt.Fprintln(out, f)
	}
	return nil
}

// InspectCmd prints per-page statistics.
type InspectCmd struct {
	DocumentArgs
	Verbose bool `short:"v" help:"Dump every layer and line"`
}

func (c *InspectCmd) Run(g *Globals, ctx context.Context) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	l := c.loader(e)
	l.Decoder = format.NewDecoder()
	if l.NumPages == 0 {
		return fmt.Errorf("no page files in %s", c.Root)
	}
	doc, err := l.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "document %s: %d pages\n", c.title(), doc.NumPages())
	for i := 0; i < doc.NumPages(); i++ {
		page, _ := doc.Page(i)
		layers, lines, points := page.Counts()
		fmt.Fprintf(out, "page %d: %s, %d layers, %d lines, %d points", i, page.Version, layers, lines, points)
		if b, ok := state.PageBounds(page); ok {
			fmt.Fprintf(out, ", ink %.0f,%.0f %.0fx%.0f", b.X, b.Y, b.Width, b.Height)
			if !b.InDevice() {
				fmt.Fprint(out, " (outside device area)")
			}
		}
		fmt.Fprintln(out)
		if c.Verbose {
			dumpPage(page)
		}
	}
	if codes := l.Decoder.UnknownBrushes(); len(codes) > 0 {
		parts := make([]string, len(codes))
		for i, code := range codes {
			parts[i] = fmt.Sprint(code)
		}
		fmt.Fprintf(out, "unknown brush types: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

func dumpPage(page *state.Page) {
	for i := 0; i < page.NumLayers(); i++ {
		layer, _ := page.Layer(i)
		fmt.Fprintf(out, "  layer %d: %s\n", i, layer)
		for j := 0; j < layer.NumLines(); j++ {
			line, _ := layer.Line(j)
			fmt.Fprintf(out, "    %s caps=%s\n", line, line.Capabilities())
		}
	}
}

// ViewCmd opens the desktop viewer.
type ViewCmd struct {
	DocumentArgs
}

func (c *ViewCmd) Run(g *Globals, ctx context.Context) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	doc, err := c.load(ctx, e)
	if err != nil {
		return err
	}
	return ui.RunViewer(ctx, c.title(), doc, e.size)
}

// ServeCmd streams the notebook over websockets, reloading it when page
// files change.
type ServeCmd struct {
	DocumentArgs
	Port        int           `help:"Listen port, overrides serve.port"`
	NoAdvertise bool          `name:"no-advertise" help:"Do not announce the server over mDNS"`
	Watch       time.Duration `help:"Poll interval for page file changes, 0 disables" default:"2s"`
}

func (c *ServeCmd) Run(g *Globals, ctx context.Context) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	doc, err := c.load(ctx, e)
	if err != nil {
		return err
	}
	srv := preview.NewServer(e.size)
	if err := srv.Load(ctx, doc); err != nil {
		return err
	}

	port := e.cfg.Serve.Port
	if c.Port > 0 {
		port = c.Port
	}
	if e.cfg.Serve.Advertise && !c.NoAdvertise {
		zone, err := preview.Advertise(e.cfg.Serve.Service, port, []string{"doc=" + c.title()})
		if err != nil {
			logging.Warn("mDNS advertising disabled", "error", err)
		} else {
			defer zone.Shutdown()
		}
	}

	fmt.Fprintf(out, "Share link: %s\n", preview.ShareURL(port))

	if c.Watch > 0 {
		go c.watch(ctx, e, srv)
	}
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
}

// watch reloads the document whenever the newest page file changes.
// A load that fails keeps the previous snapshot.
func (c *ServeCmd) watch(ctx context.Context, e *env, srv *preview.Server) {
	ticker := time.NewTicker(c.Watch)
	defer ticker.Stop()
	last := c.lastModified(e)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		mod := c.lastModified(e)
		if mod.Equal(last) {
			continue
		}
		last = mod
		doc, err := c.load(ctx, e)
		if err == nil {
			err = srv.Load(ctx, doc)
		}
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logging.Warn("reload failed", "document", c.title(), "error", err)
			}
			continue
		}
		logging.Info("document reloaded", "document", c.title(), "pages", doc.NumPages())
	}
}

func (c *ServeCmd) lastModified(e *env) time.Time {
	l := c.loader(e)
	var newest time.Time
	for i := 0; i < l.NumPages; i++ {
		info, err := os.Stat(l.PagePath(i))
		if err != nil {
			continue
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest
}

// BrowseCmd lists preview servers announced over mDNS.
type BrowseCmd struct {
	Timeout time.Duration `help:"How long to wait for answers" default:"2s"`
}

func (c *BrowseCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	peers, err := preview.Browse(e.cfg.Serve.Service, c.Timeout)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	logging.PeerEvent("browse", len(peers))
	for _, p := range peers {
		fmt.Fprintf(out, "http://%s/\n", p)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(out, "rmboard version %s\n", version)
	return nil
}
