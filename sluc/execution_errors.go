package sluc

import (
	"errors"
	"fmt"
	"strings"
)

// FaultKind classifies a runtime fault.
type FaultKind string

const (
	FaultDivisionByZero      FaultKind = "DivisionByZero"
	FaultModuloByZero        FaultKind = "ModuloByZero"
	FaultUndefinedIdentifier FaultKind = "UndefinedIdentifier"
	FaultUndefinedFunction   FaultKind = "UndefinedFunction"
	FaultMissingReturn       FaultKind = "MissingReturn"
	FaultNegativeExponent    FaultKind = "NegativeExponent"
	FaultRecursionLimit      FaultKind = "RecursionLimit"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is a fault that halted evaluation. Output printed before the
// fault remains valid.
type RuntimeError struct {
	Kind      FaultKind
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

// ErrStepQuotaExceeded is wrapped by the error returned when a run exceeds
// Config.StepQuota.
var ErrStepQuotaExceeded = errors.New("step quota exceeded")

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) faultAt(kind FaultKind, pos Position, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)

	if len(exec.callStack) > 0 {
		// where the fault occurred, then each call site outward
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(exec.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	}

	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		CodeFrame: formatCodeFrame(exec.program.source, pos),
		Frames:    frames,
	}
}
