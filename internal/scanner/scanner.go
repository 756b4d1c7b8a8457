// Package scanner tokenizes arithmetic expressions such as "3 + 4 * (2 - 1)".
//
// It shares no code with the automaton engine; it is a plain character
// dispatch loop. Every token sequence ends with exactly one END token.
package scanner

import (
	"fmt"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type Kind int

const (
	Unknown Kind = iota
	Number
	Add
	Subtract
	Multiply
	Divide
	OpenBrace
	CloseBrace
	End
)

var kindNames = [...]string{
	Unknown:    "UNKNOWN",
	Number:     "NUMBER",
	Add:        "ADD",
	Subtract:   "SUBTRACT",
	Multiply:   "MULTIPLY",
	Divide:     "DIVIDE",
	OpenBrace:  "OPEN_BRACE",
	CloseBrace: "CLOSE_BRACE",
	End:        "END",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is one lexeme. Value is the parsed integer for Number; Text holds the
// source text, which for Unknown is the offending character or byte.
type Token struct {
	Kind  Kind
	Text  string
	Value int
	Pos   int
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Value)
	case Unknown:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

var operators = map[rune]Kind{
	'+': Add,
	'-': Subtract,
	'*': Multiply,
	'/': Divide,
	'(': OpenBrace,
	')': CloseBrace,
}

// Scanner walks a source string one token at a time.
type Scanner struct {
	src  string
	pos  int
	done bool
}

func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Next returns the next token. Once End has been returned every further call
// returns End again.
func (s *Scanner) Next() Token {
	for s.pos < len(s.src) {
		r, width := utf8.DecodeRuneInString(s.src[s.pos:])
		start := s.pos

		switch {
		case unicode.IsSpace(r):
			s.pos += width
			continue
		case isDigit(r):
			return s.number()
		}

		s.pos += width
		if kind, ok := operators[r]; ok {
			return Token{Kind: kind, Text: string(r), Pos: start}
		}
		return Token{Kind: Unknown, Text: s.src[start:s.pos], Pos: start}
	}
	s.done = true
	return Token{Kind: End, Pos: len(s.src)}
}

// Done reports whether End has been returned.
func (s *Scanner) Done() bool {
	return s.done
}

// number consumes a run of ASCII digits. Literals that overflow int are
// reported as Unknown.
func (s *Scanner) number() Token {
	start := s.pos
	for s.pos < len(s.src) && isDigit(rune(s.src[s.pos])) {
		s.pos++
	}
	text := s.src[start:s.pos]
	n, err := strconv.Atoi(text)
	if err != nil {
		return Token{Kind: Unknown, Text: text, Pos: start}
	}
	return Token{Kind: Number, Text: text, Value: n, Pos: start}
}

// Tokens returns a lazy sequence over src. Each iteration starts a fresh
// scan, so the sequence can be ranged over any number of times.
func Tokens(src string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := New(src)
		for {
			tok := s.Next()
			if !yield(tok) || tok.Kind == End {
				return
			}
		}
	}
}

// All collects the full token list of src, End included.
func All(src string) []Token {
	var out []Token
	for tok := range Tokens(src) {
		out = append(out, tok)
	}
	return out
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
