package sluc

import "maps"

// Env is the frame of a single function call. Frames do not chain: a
// function sees only its own parameters and locals.
type Env struct {
	values map[string]Value
}

func newEnv() *Env {
	return &Env{values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Assign updates an existing binding and reports whether one was found.
func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] = val
	return true
}

// Snapshot returns a copy of the frame's bindings.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	maps.Copy(out, e.values)
	return out
}
