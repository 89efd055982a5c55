package opcode

import "strings"

// Result is the outcome of dispatching one operation-code cell.
type Result struct {
	Mode Mode
	// Invalid is set when the cell held a non-empty, unknown token.
	Invalid bool
	Token   string
}

// Dispatcher tracks the mode of the current and previous row.
type Dispatcher struct {
	current  Mode
	previous Mode
}

// Dispatch classifies token and makes it the current row's mode.
// Empty tokens yield None silently; unknown tokens yield None with Invalid set.
func (d *Dispatcher) Dispatch(token string) Result {
	token = strings.TrimSpace(token)
	res := Result{Mode: None, Token: token}
	if token != "" {
		if m, ok := Lookup(strings.ToUpper(token)); ok {
			res.Mode = m
		} else {
			res.Invalid = true
		}
	}
	d.previous = d.current
	d.current = res.Mode
	return res
}

// Continue overrides the current row's mode, used when an empty row
// continues the array opened on a previous row.
func (d *Dispatcher) Continue(m Mode) {
	d.current = m
}

func (d *Dispatcher) Current() Mode  { return d.current }
func (d *Dispatcher) Previous() Mode { return d.previous }

