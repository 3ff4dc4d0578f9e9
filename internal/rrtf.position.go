package internal

import (
	"fmt"
	"sort"
)

// Position represents a location in the markup source
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// LineIndex maps byte offsets of one source to line/column positions.
type LineIndex struct {
	starts []int // byte offset of each line start
	size   int
}

// NewLineIndex indexes the line starts of source.
func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == CharNewline {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, size: len(source)}
}

// Position returns the position of offset. Offsets outside the source are clamped.
func (x *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > x.size {
		offset = x.size
	}
	// index of the last line start <= offset
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - x.starts[line] + 1,
	}
}
