package pager

import "errors"

var (
	// ErrStartupTimeout is returned when no initial data arrives in time.
	ErrStartupTimeout = errors.New("startup timeout")

	// ErrGetLines marks a visible-window request outside the store.
	ErrGetLines = errors.New("get lines")

	// ErrSearchBuild is returned when the search matcher cannot be built.
	ErrSearchBuild = errors.New("build search matcher")

	// ErrRegexBuild is returned when the context patterns cannot be compiled.
	ErrRegexBuild = errors.New("build context patterns")
)
