package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func pageLabelText(index, total int) string {
	if total == 0 {
		return "No pages"
	}
	return fmt.Sprintf("Page %d / %d", index+1, total)
}

// NewToolbar builds the page navigation and zoom controls for a viewer.
// It takes over the viewer's OnPageChanged callback.
func NewToolbar(v *PageViewer) fyne.CanvasObject {
	label := widget.NewLabel(pageLabelText(v.Page(), v.NumPages()))
	v.OnPageChanged = func(index, total int) {
		label.SetText(pageLabelText(index, total))
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { v.Prev() }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { v.Next() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), v.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), v.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), v.FitContent),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), v.ResetView),
	)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		label,
		layout.NewSpacer(),
	)
}
