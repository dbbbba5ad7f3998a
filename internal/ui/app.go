package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"RmBoard/internal/export"
	"RmBoard/internal/state"
)

// RunViewer renders doc and opens a window paging through it. It blocks
// until the window is closed.
func RunViewer(ctx context.Context, title string, doc *state.Document, size export.PageSize) error {
	pages := NewPageCanvas(size)
	if err := export.NewRenderer(pages, size).Render(ctx, doc); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	myApp := app.New()
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(1024, 768))

	viewer := NewPageViewer(pages)
	toolbar := NewToolbar(viewer)
	status := widget.NewLabel(fmt.Sprintf("%d pages, %.0fx%.0f pt", pages.NumPages(), size.Width, size.Height))

	myWindow.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyLeft, fyne.KeyPageUp:
			viewer.Prev()
		case fyne.KeyRight, fyne.KeyPageDown, fyne.KeySpace:
			viewer.Next()
		case fyne.KeyHome:
			viewer.SetPage(0)
		case fyne.KeyEnd:
			viewer.SetPage(viewer.NumPages() - 1)
		}
	})

	content := container.NewBorder(toolbar, status, nil, nil, viewer)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
	return nil
}
