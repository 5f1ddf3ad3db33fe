package game

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrInsufficientFunds is returned when a build costs more than the remaining money.
	ErrInsufficientFunds = errors.New("not enough money")
	// ErrCellOccupied is returned when a build targets a cell that cannot take it.
	ErrCellOccupied = errors.New("cell is already occupied")
	// ErrTooManyActions is returned for an action submitted after the turn limit.
	ErrTooManyActions = errors.New("too many actions")
	// ErrTooFewActions is returned when the actions run out before the turn limit.
	ErrTooFewActions = errors.New("too few actions")
	// ErrInvalidAction is returned for an action of unknown kind or off the board.
	ErrInvalidAction = errors.New("invalid action")
)

// ParseError reports malformed instance or action text. Line is 1-based, 0 when unknown.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// RuleError is a legality violation raised while replaying the given turn.
type RuleError struct {
	Turn int
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%v (turn %d)", e.Err, e.Turn)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
