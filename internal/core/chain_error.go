package core

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/types"
)

// ChainError is returned for every rejected chain or expression. It wraps
// the coded errbuilder error so callers can branch on either the kind or
// the code.
type ChainError struct {
	Kind  types.ChainErrorKind
	Chain string
	Err   *errbuilder.ErrBuilder
}

func (e *ChainError) Error() string {
	if e.Chain == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("chain %s: %s", e.Chain, e.Err.Error())
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// Code reports the errbuilder code the kind maps to.
func (e *ChainError) Code() errbuilder.ErrCode {
	return codeForKind(e.Kind)
}

// KindOf returns the chain error kind carried by err, or "" when err is not
// a ChainError.
func KindOf(err error) types.ChainErrorKind {
	var chainErr *ChainError
	if errors.As(err, &chainErr) {
		return chainErr.Kind
	}
	return ""
}

func chainError(kind types.ChainErrorKind, msg string) *ChainError {
	return &ChainError{
		Kind: kind,
		Err: errbuilder.New().
			WithCode(codeForKind(kind)).
			WithMsg(msg),
	}
}

func chainErrorf(kind types.ChainErrorKind, format string, args ...any) *ChainError {
	return chainError(kind, fmt.Sprintf(format, args...))
}

func withChain(err error, name string) error {
	var chainErr *ChainError
	if errors.As(err, &chainErr) && chainErr.Chain == "" {
		chainErr.Chain = name
	}
	return err
}

func codeForKind(kind types.ChainErrorKind) errbuilder.ErrCode {
	switch kind {
	case types.ErrDuplicateElementInChain:
		return errbuilder.CodeAlreadyExists
	case types.ErrUnresolvableRelativeSizing:
		return errbuilder.CodeNotFound
	case types.ErrCyclicSizingReference, types.ErrMissingBoundsForWeighted, types.ErrMissingPlaceholderParent:
		return errbuilder.CodeFailedPrecondition
	default:
		return errbuilder.CodeInvalidArgument
	}
}
