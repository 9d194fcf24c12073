package pager

import "fmt"

// Mode is the interaction state. It is one of Paging, Editing, Active or
// Exiting.
type Mode interface {
	mode() string
}

// Paging is plain scrolling.
type Paging struct{}

// Editing is a search query being typed. Every edit re-runs a forward
// search from the current position.
type Editing struct {
	Query Query
}

// Active is a committed, non-empty search term. Base is the position the
// search was committed at.
type Active struct {
	Term string
	Base int
}

// Exiting is terminal: the pager loop should stop.
type Exiting struct{}

func (Paging) mode() string  { return "paging" }
func (Editing) mode() string { return "editing" }
func (Active) mode() string  { return "active" }
func (Exiting) mode() string { return "exiting" }

// ModeName returns a short label for m.
func ModeName(m Mode) string {
	if m == nil {
		return "none"
	}
	return m.mode()
}

// HandleKey applies one key event to the engine. Keys with no meaning in
// the current mode are ignored. An error means a search could not be run;
// the engine is left unchanged.
func (e *Engine) HandleKey(k Key) error {
	if k.Code == KeyInterrupt {
		e.setMode(Exiting{})
		return nil
	}

	switch m := e.mode.(type) {
	case Paging:
		e.handlePaging(k)
	case Editing:
		return e.handleEditing(m, k)
	case Active:
		return e.handleActive(m, k)
	}
	return nil
}

func (e *Engine) handlePaging(k Key) {
	total := e.store.Len()
	switch k.Code {
	case KeyQuit, KeyEscape:
		e.setMode(Exiting{})
	case KeyDown:
		e.position = ClampDown(e.position, 1, total, e.height)
	case KeyUp:
		e.position = ClampUp(e.position, 1)
	case KeyPageDown:
		e.position = ClampDown(e.position, e.height, total, e.height)
	case KeyPageUp:
		e.position = ClampUp(e.position, e.height)
	case KeySearch:
		e.setMode(Editing{Query: NewQuery("")})
	}
}

func (e *Engine) handleEditing(m Editing, k Key) error {
	switch k.Code {
	case KeyEscape:
		e.setMode(Paging{})
		return nil
	case KeyEnter:
		if m.Query.Empty() {
			e.setMode(Paging{})
			return nil
		}
		e.setMode(Active{Term: m.Query.Value(), Base: e.position})
		return nil
	}

	query := m.Query
	if !query.Apply(k) {
		e.mode = Editing{Query: query}
		return nil
	}
	idx, ok, err := Search(query.Value(), e.position, e.store.Lines(), Forward)
	if err != nil {
		return fmt.Errorf("search as you type: %w", err)
	}
	e.mode = Editing{Query: query}
	if ok {
		e.position = idx
	}
	return nil
}

func (e *Engine) handleActive(m Active, k Key) error {
	switch k.Code {
	case KeyEscape, KeyQuit:
		e.setMode(Paging{})
	case KeySearch:
		e.setMode(Editing{Query: NewQuery("")})
	case KeyNext:
		return e.jump(m.Term, e.position+1, Forward)
	case KeyPrev:
		return e.jump(m.Term, e.position, Backward)
	}
	return nil
}

func (e *Engine) jump(term string, start int, dir Direction) error {
	idx, ok, err := Search(term, start, e.store.Lines(), dir)
	if err != nil {
		return fmt.Errorf("search %s: %w", dir, err)
	}
	if ok {
		e.position = idx
	} else {
		e.logger.Debug("no match", "term", term, "direction", dir.String(), "from", start)
	}
	return nil
}

func (e *Engine) setMode(m Mode) {
	if ModeName(e.mode) != ModeName(m) {
		e.logger.Debug("mode change", "from", ModeName(e.mode), "to", ModeName(m))
	}
	e.mode = m
}
