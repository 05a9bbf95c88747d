package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog"

	"PaintBoard/internal/state"
)

// Notifier shows modal messages to the user.
type Notifier interface {
	Info(title, message string)
	Error(err error)
	Confirm(title, message string, done func(ok bool))
}

type windowNotifier struct{ win fyne.Window }

func (n windowNotifier) Info(title, message string) {
	dialog.ShowInformation(title, message, n.win)
}

func (n windowNotifier) Error(err error) {
	dialog.ShowError(err, n.win)
}

func (n windowNotifier) Confirm(title, message string, done func(bool)) {
	dialog.ShowConfirm(title, message, done, n.win)
}

// ExportFunc writes the canvas shapes to path.
type ExportFunc func(path string, shapes []state.Shape, width, height float32) error

// Actions are the menu and tool panel commands that need more than a
// selection change.
type Actions struct {
	painter  *state.Painter
	scene    *state.Scene
	notify   Notifier
	export   ExportFunc
	snapshot string
	size     fyne.Size
	log      zerolog.Logger

	// Status, when set, receives a short line after each action.
	Status func(string)
}

// NewActions exports snapshots with export to the snapshot path.
func NewActions(p *state.Painter, scene *state.Scene, n Notifier, export ExportFunc, snapshot string, size fyne.Size, log zerolog.Logger) *Actions {
	return &Actions{
		painter:  p,
		scene:    scene,
		notify:   n,
		export:   export,
		snapshot: snapshot,
		size:     size,
		log:      log,
	}
}

func (a *Actions) Undo() {
	if err := a.painter.Undo(); err != nil {
		if errors.Is(err, state.ErrNothingToUndo) {
			a.notify.Info("Undo", "Nothing to undo.")
			return
		}
		a.log.Error().Err(err).Msg("undo failed")
		a.notify.Error(err)
		return
	}
	a.status(fmt.Sprintf("Undo: %d remaining", a.painter.UndoDepth()))
}

// ClearCanvas asks for confirmation, then wipes the canvas and the undo
// stack.
func (a *Actions) ClearCanvas() {
	a.notify.Confirm("Clear Canvas",
		"Are you sure you want to clear the canvas? This action cannot be undone.",
		func(ok bool) {
			if !ok {
				return
			}
			a.painter.Clear()
			a.log.Info().Msg("canvas cleared")
			a.status("Canvas cleared")
		})
}

// SaveSnapshot exports the canvas to the fixed snapshot file.
func (a *Actions) SaveSnapshot() {
	shapes := a.scene.Shapes()
	if err := a.export(a.snapshot, shapes, a.size.Width, a.size.Height); err != nil {
		a.log.Error().Err(err).Str("path", a.snapshot).Msg("snapshot failed")
		a.notify.Error(fmt.Errorf("error saving snapshot: %w", err))
		return
	}
	a.log.Info().Str("path", a.snapshot).Int("shapes", len(shapes)).Msg("snapshot saved")
	a.notify.Info("Snapshot Saved", "Snapshot saved as "+a.snapshot)
	a.status("Saved " + a.snapshot)
}

func (a *Actions) status(text string) {
	if a.Status != nil {
		a.Status(text)
	}
}
