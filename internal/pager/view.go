package pager

import (
	"fmt"
	"math"
)

// ClampDown advances position by step without passing the bottom anchor
// max(0, total-height). An overflowing sum saturates before clamping.
func ClampDown(position, step, total, height int) int {
	next := math.MaxInt
	if step <= math.MaxInt-position {
		next = position + step
	}
	ceiling := max(0, total-height)
	return max(0, min(next, ceiling))
}

// ClampUp moves position back by step, floored at zero.
func ClampUp(position, step int) int {
	if step >= position {
		return 0
	}
	if step < 0 && position > math.MaxInt+step {
		return math.MaxInt
	}
	return position - step
}

// VisibleWindow returns the lines shown for a viewport of height rows
// starting at position.
//
// When the store is not strictly longer than position+height the window
// ends one line before the last stored line, so a window near the end of
// the data can be one row short.
func VisibleWindow(lines []string, position, height int) ([]string, error) {
	if position < 0 || height < 0 {
		return nil, fmt.Errorf("%w: position %d height %d", ErrGetLines, position, height)
	}
	if len(lines) == 0 {
		if position == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: position %d in empty store", ErrGetLines, position)
	}
	if position >= len(lines) {
		return nil, fmt.Errorf("%w: position %d beyond %d lines", ErrGetLines, position, len(lines))
	}
	if height <= math.MaxInt-position && len(lines) > position+height {
		return lines[position : position+height], nil
	}
	return lines[position : len(lines)-1], nil
}
