package ast

import (
	"fmt"
	"go/token"
	"strings"
)

// Positioner allows finding the location in the original source text.
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Range represents a range of positions in the source code.
//
// Positions are 1-based byte offsets, so that the zero Range (token.NoPos)
// means the node was not read from source, like expressions built by the
// legacy parser or by tests.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

// Pos returns the starting position of the range.
func (r Range) Pos() token.Pos { return r.PosStart }

// End returns the ending position of the range.
func (r Range) End() token.Pos { return r.PosEnd }

// IsValid reports whether the range points into some source.
func (r Range) IsValid() bool { return r.PosStart.IsValid() }

// String returns a string representation of the range.
func (r Range) String() string {
	if r.PosStart == r.PosEnd {
		return fmt.Sprintf("%v", r.PosStart)
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// RangeBetween creates a Range between two Positioners.
func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// RangeOf creates a Range from a Positioner.
func RangeOf(expr Positioner) Range {
	if expr == nil {
		return Range{}
	}
	if asRange, ok := expr.(*Range); ok {
		return *asRange
	}
	if asRange, ok := expr.(Range); ok {
		return asRange
	}
	return Range{expr.Pos(), expr.End()}
}

// LineCol converts pos into a 1-based line and column inside src.
// It returns 0, 0 for token.NoPos or positions past the end of src.
func LineCol(src string, pos token.Pos) (line, col int) {
	if !pos.IsValid() || int(pos) > len(src)+1 {
		return 0, 0
	}
	offset := int(pos) - 1
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}

// RangeFromOffsets converts 0-based byte offsets [start, end) into a Range.
func RangeFromOffsets(start, end int) Range {
	return Range{PosStart: token.Pos(start + 1), PosEnd: token.Pos(end + 1)}
}
