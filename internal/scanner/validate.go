package scanner

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnbalanced      = errors.New("unbalanced parentheses")
)

// category groups token kinds by the role they play in an expression.
type category int

const (
	catStart category = iota
	catOperand
	catOperator
	catOpen
	catClose
)

var categoryNames = [...]string{
	catStart:    "start",
	catOperand:  "number",
	catOperator: "operator",
	catOpen:     "opening parenthesis",
	catClose:    "closing parenthesis",
}

// follows lists the categories allowed directly after each category.
var follows = map[category][]category{
	catStart:    {catOperand, catOpen},
	catOpen:     {catOperand, catOpen},
	catOperator: {catOperand, catOpen},
	catOperand:  {catOperator, catClose},
	catClose:    {catOperator, catClose},
}

func categoryOf(k Kind) (category, bool) {
	switch k {
	case Number:
		return catOperand, true
	case Add, Subtract, Multiply, Divide:
		return catOperator, true
	case OpenBrace:
		return catOpen, true
	case CloseBrace:
		return catClose, true
	}
	return 0, false
}

func allowed(prev, next category) bool {
	for _, c := range follows[prev] {
		if c == next {
			return true
		}
	}
	return false
}

// Validate checks that src is a well-formed arithmetic expression: every
// token is known, each token may follow its predecessor, parentheses are
// balanced, and the expression is non-empty and ends with a number or a
// closing parenthesis. The returned error wraps ErrInvalidToken,
// ErrUnexpectedToken or ErrUnbalanced and names the offset.
func Validate(src string) error {
	prev := catStart
	depth := 0
	for tok := range Tokens(src) {
		if tok.Kind == End {
			break
		}
		cat, ok := categoryOf(tok.Kind)
		if !ok {
			return fmt.Errorf("%w %s at offset %d", ErrInvalidToken, tok, tok.Pos)
		}
		if !allowed(prev, cat) {
			return fmt.Errorf("%w: %s after %s at offset %d", ErrUnexpectedToken, categoryNames[cat], categoryNames[prev], tok.Pos)
		}
		switch cat {
		case catOpen:
			depth++
		case catClose:
			if depth == 0 {
				return fmt.Errorf("%w: extra closing parenthesis at offset %d", ErrUnbalanced, tok.Pos)
			}
			depth--
		}
		prev = cat
	}

	if depth > 0 {
		return fmt.Errorf("%w: %d unclosed", ErrUnbalanced, depth)
	}
	if prev != catOperand && prev != catClose {
		return fmt.Errorf("%w: expression ends after %s", ErrUnexpectedToken, categoryNames[prev])
	}
	return nil
}
