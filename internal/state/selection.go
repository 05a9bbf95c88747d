package state

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownOption = errors.New("unknown option")

type Tool string

const (
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
)

type PenType string

const (
	PenLine    PenType = "line"
	PenRound   PenType = "round"
	PenSquare  PenType = "square"
	PenArrow   PenType = "arrow"
	PenDiamond PenType = "diamond"
)

// Background is the canvas color the eraser paints with.
const Background = "white"

var (
	Colors     = []string{"black", "red", "green", "blue", "yellow", "orange", "purple", "white"}
	BrushSizes = []int{2, 4, 6, 8}
	PenTypes   = []PenType{PenLine, PenRound, PenSquare, PenArrow, PenDiamond}
)

// Selection is the tool panel state. The zero value is not usable, start
// from DefaultSelection.
type Selection struct {
	tool Tool
	ink  string
	size int
	pen  PenType
}

func DefaultSelection() *Selection {
	return &Selection{
		tool: ToolPen,
		ink:  Colors[0],
		size: BrushSizes[0],
		pen:  PenTypes[0],
	}
}

func (s *Selection) Tool() Tool       { return s.tool }
func (s *Selection) Ink() string      { return s.ink }
func (s *Selection) Size() int        { return s.size }
func (s *Selection) PenType() PenType { return s.pen }

// Color is the color the next shape is drawn with. The eraser always paints
// the background.
func (s *Selection) Color() string {
	if s.tool == ToolEraser {
		return Background
	}
	return s.ink
}

func (s *Selection) SelectPen()    { s.tool = ToolPen }
func (s *Selection) SelectEraser() { s.tool = ToolEraser }

func (s *Selection) SetColor(c string) error {
	if !slices.Contains(Colors, c) {
		return fmt.Errorf("color %q: %w", c, ErrUnknownOption)
	}
	s.ink = c
	return nil
}

func (s *Selection) SetSize(size int) error {
	if !slices.Contains(BrushSizes, size) {
		return fmt.Errorf("brush size %d: %w", size, ErrUnknownOption)
	}
	s.size = size
	return nil
}

func (s *Selection) SetPenType(p PenType) error {
	if !slices.Contains(PenTypes, p) {
		return fmt.Errorf("pen type %q: %w", p, ErrUnknownOption)
	}
	s.pen = p
	return nil
}
