// Package roxerr collects the diagnostic types shared by the parser and
// downstream consumers. RoxError mirrors original_source/src/errors.rs:
// a token plus a message, formatted as "[ERROR]: at L: MSG".
package roxerr

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/roxlang/rox/internal/token"
)

// RoxError pairs a diagnostic message with the token where it was raised.
type RoxError struct {
	Token token.Token
	Msg   string
}

// New builds a RoxError for tok.
func New(tok token.Token, msg string) *RoxError {
	return &RoxError{Token: tok, Msg: msg}
}

// Error implements the error interface with the format spec.md §6 requires.
func (e *RoxError) Error() string {
	return fmt.Sprintf("[ERROR]: at %d: %s", e.Token.Line, e.Msg)
}

// Bag accumulates RoxErrors during a single parse pass. It wraps
// multierror.Error so the aggregate summary ("Errors detected while
// parsing: found N errors") and the individual messages are both available
// from one place, the way golox's Parser.errors *multierror.Error does.
type Bag struct {
	merr *multierror.Error
}

// Add appends err to the bag.
func (b *Bag) Add(err *RoxError) {
	b.merr = multierror.Append(b.merr, err)
}

// HasErrors reports whether any error was added.
func (b *Bag) HasErrors() bool {
	return b.merr != nil && len(b.merr.Errors) > 0
}

// Errors returns the individual RoxErrors in the order they were added.
func (b *Bag) Errors() []*RoxError {
	if b.merr == nil {
		return nil
	}
	out := make([]*RoxError, 0, len(b.merr.Errors))
	for _, err := range b.merr.Errors {
		if re, ok := err.(*RoxError); ok {
			out = append(out, re)
		}
	}
	return out
}

// Summary renders the aggregate count line from spec.md §6.
func (b *Bag) Summary() string {
	n := 0
	if b.merr != nil {
		n = len(b.merr.Errors)
	}
	return fmt.Sprintf("Errors detected while parsing: found %d errors", n)
}
