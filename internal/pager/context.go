package pager

import (
	"fmt"
	"regexp"
)

// InputKind selects the pattern family used to recognize blocks.
type InputKind int

const (
	// InputGit recognizes git log and git log -p output.
	InputGit InputKind = iota
)

const (
	gitBlockStart    = `^commit [0-9a-fA-F]+\b`
	gitBlockBoundary = `^(commit [0-9a-fA-F]+\b|diff --git)`
)

// ContextFinder locates the block enclosing a scroll position.
type ContextFinder struct {
	start    *regexp.Regexp
	boundary *regexp.Regexp
}

// NewContextFinder compiles the patterns for kind.
func NewContextFinder(kind InputKind) (*ContextFinder, error) {
	switch kind {
	case InputGit:
		return compileFinder(gitBlockStart, gitBlockBoundary)
	default:
		return nil, fmt.Errorf("%w: unknown input kind %d", ErrRegexBuild, kind)
	}
}

func compileFinder(start, boundary string) (*ContextFinder, error) {
	startRe, err := regexp.Compile(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegexBuild, err)
	}
	boundaryRe, err := regexp.Compile(boundary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegexBuild, err)
	}
	return &ContextFinder{start: startRe, boundary: boundaryRe}, nil
}

// Range returns the inclusive bounds [start, end] of the block enclosing
// position, before the trailing separator line is added. ok is false when
// no block start lies above position.
func (f *ContextFinder) Range(lines []string, position int) (start, end int, ok bool) {
	if position <= 1 {
		return 0, 0, false
	}
	position = min(position, len(lines))

	start = -1
	for i := position - 1; i >= 0; i-- {
		if f.start.MatchString(lines[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}

	end = position - 1
	for i := start + 1; i < position; i++ {
		if f.boundary.MatchString(lines[i]) {
			end = i - 1
			break
		}
	}
	return start, end, true
}

// Find returns the block enclosing position plus one trailing line, or nil
// when there is none.
func (f *ContextFinder) Find(lines []string, position int) []string {
	block, _ := f.Locate(lines, position)
	return block
}

// Locate is Find that also reports the store index of the block's first
// line.
func (f *ContextFinder) Locate(lines []string, position int) (block []string, start int) {
	start, end, ok := f.Range(lines, position)
	if !ok {
		return nil, 0
	}
	last := min(end+1, len(lines)-1)
	return lines[start : last+1], start
}
