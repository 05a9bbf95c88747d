package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"PaintBoard/internal/config"
	"PaintBoard/internal/export"
	"PaintBoard/internal/logging"
	"PaintBoard/internal/state"
)

const Title = "Paint Application"

// UndoShortcut is Ctrl+Z (Cmd+Z on macOS).
var UndoShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}

// App is the paint window with everything wired to one scene.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	log     zerolog.Logger

	Scene   *state.Scene
	Painter *state.Painter
	Canvas  *CanvasWidget
	Tools   *ToolPanel
	Actions *Actions

	status *widget.Label
}

// New creates the main window sized from cfg. Local ops are stamped by clock.
func New(fyneApp fyne.App, cfg *config.Config, clock *state.Clock, log zerolog.Logger) *App {
	a := &App{
		fyneApp: fyneApp,
		window:  fyneApp.NewWindow(Title),
		log:     logging.Component(log, "ui"),
		Scene:   state.NewScene(),
		status:  widget.NewLabel("Ready"),
	}
	a.window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	canvasSize := fyne.NewSize(cfg.Canvas.Width, cfg.Canvas.Height)
	a.Painter = state.NewPainter(a.Scene, state.DefaultSelection(), clock, logging.Component(log, "painter"))
	a.Canvas = NewCanvasWidget(a.Scene, a.Painter, canvasSize)
	a.Actions = NewActions(a.Painter, a.Scene, windowNotifier{a.window}, export.ExportPDF, cfg.Snapshot, canvasSize, a.log)
	a.Actions.Status = a.status.SetText
	a.Tools = NewToolPanel(a.Painter.Selection(), a.Actions, a.log)

	a.setupMenus()
	a.window.Canvas().AddShortcut(UndoShortcut, func(fyne.Shortcut) { a.Actions.Undo() })

	a.window.SetContent(container.NewBorder(nil, a.status, nil, a.Tools.Object(), a.Canvas))
	return a
}

func (a *App) setupMenus() {
	exit := fyne.NewMenuItem("Exit", func() { a.fyneApp.Quit() })
	exit.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Snapshot", a.Actions.SaveSnapshot),
		fyne.NewMenuItemSeparator(),
		exit,
	)

	undo := fyne.NewMenuItem("Undo", a.Actions.Undo)
	undo.Shortcut = UndoShortcut
	editMenu := fyne.NewMenu("Edit", undo)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))
}

func (a *App) Window() fyne.Window { return a.window }

// SetStatus may be called from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() { a.status.SetText(text) })
}

// OnLocalOp routes the painter's ops to fn. It may be called from any
// goroutine.
func (a *App) OnLocalOp(fn func(state.Op)) {
	fyne.Do(func() { a.Painter.OnOp = fn })
}

// ApplyRemote replays an op from another site on the UI goroutine.
func (a *App) ApplyRemote(op state.Op) {
	fyne.Do(func() { a.Painter.Apply(op) })
}

// Snapshot collects the catch-up ops for a joining peer. It blocks until the
// UI goroutine has produced them, so it must not be called from it.
func (a *App) Snapshot() []state.Op {
	var ops []state.Op
	fyne.DoAndWait(func() { ops = a.Painter.Snapshot() })
	return ops
}

func (a *App) ShowAndRun() {
	a.log.Info().Msg("window shown")
	a.window.ShowAndRun()
}
