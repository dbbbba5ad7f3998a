package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"RmBoard/internal/config"
	"RmBoard/internal/export"
	"RmBoard/internal/format"
	"RmBoard/internal/logging"
	"RmBoard/internal/state"
)

// out receives command output. Logs go to stderr.
var out io.Writer = os.Stdout

// Globals are the flags shared by every command. Set flags override the
// config file.
type Globals struct {
	Config    string `help:"YAML configuration file" type:"path" default:"rmboard.yaml"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`
	PageSize  string `name:"page-size" help:"Output page size: A4, A5, Letter or WxH in points"`
	Workers   int    `help:"Pages decoded in parallel"`
}

// env is the resolved configuration a command runs with.
type env struct {
	cfg  *config.Config
	size export.PageSize
}

func (g *Globals) setup() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.LogFormat = g.LogFormat
	}
	if g.PageSize != "" {
		cfg.PageSize = g.PageSize
	}
	if g.Workers != 0 {
		cfg.Workers = g.Workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logFormat, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	logging.InitLogger(level, logFormat, os.Stderr)
	gg.SetLogger(logging.GetLogger())

	size, err := export.ParsePageSize(cfg.PageSize)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, size: size}, nil
}

// DocumentArgs selects the notebook a command works on.
type DocumentArgs struct {
	Root  string `arg:"" help:"Notebook directory holding 0.rm, 1.rm, ..." type:"existingdir"`
	Pages int    `short:"n" help:"Number of pages, 0 detects them" default:"0"`
}

func (d *DocumentArgs) loader(e *env) *format.Loader {
	l := &format.Loader{
		Root:     d.Root,
		NumPages: d.Pages,
		Ext:      e.cfg.PageExt,
		Workers:  e.cfg.Workers,
	}
	if l.NumPages == 0 {
		l.NumPages = l.DetectPages()
	}
	return l
}

// title names the notebook by its UUID, or its directory when the name is
// not one.
func (d *DocumentArgs) title() string {
	if id, ok := format.DocumentID(d.Root); ok {
		return id.String()
	}
	return filepath.Base(filepath.Clean(d.Root))
}

func (d *DocumentArgs) load(ctx context.Context, e *env) (*state.Document, error) {
	l := d.loader(e)
	if l.NumPages == 0 {
		return nil, fmt.Errorf("no page files in %s", d.Root)
	}
	doc, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	logging.Info("document loaded", "document", d.title(), "pages", doc.NumPages())
	return doc, nil
}
