package interpreter

import (
	"fmt"

	"lexenv/interpreter-go/pkg/runtime"
)

type breakSignal struct {
	label string
}

func (b breakSignal) Error() string {
	if b.label != "" {
		return fmt.Sprintf("break %s", b.label)
	}
	return "break"
}

func (breakSignal) CompletionType() runtime.CompletionType { return runtime.CompletionBreak }

type continueSignal struct {
	label string
}

func (c continueSignal) Error() string {
	if c.label != "" {
		return fmt.Sprintf("continue %s", c.label)
	}
	return "continue"
}

func (continueSignal) CompletionType() runtime.CompletionType { return runtime.CompletionContinue }

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}

func (returnSignal) CompletionType() runtime.CompletionType { return runtime.CompletionReturn }

// labelSet is the set of labels that apply to the statement being
// evaluated.
type labelSet []string

func (l labelSet) has(label string) bool {
	for _, name := range l {
		if name == label {
			return true
		}
	}
	return false
}

// loopContinues reports whether err ends the current iteration but not the
// loop.
func loopContinues(err error, labels labelSet) bool {
	if err == nil {
		return true
	}
	sig, ok := err.(continueSignal)
	if !ok {
		return false
	}
	return sig.label == "" || labels.has(sig.label)
}

// consumeBreak turns an unlabelled break (or one aimed at labels) into a
// normal completion.
func consumeBreak(err error, labels labelSet) error {
	if sig, ok := err.(breakSignal); ok && (sig.label == "" || labels.has(sig.label)) {
		return nil
	}
	return err
}
