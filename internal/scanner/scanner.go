// Package scanner drives tagged DFAs over input streams, emitting the
// longest-match token stream with deterministic tie-breaking, error
// tokens for unrecognized spans, and a single trailing EOF token.
package scanner

import (
	"fmt"
	"unicode/utf16"

	"GoLex/internal/automaton"
	"GoLex/internal/charset"
	"GoLex/internal/regex"
	"GoLex/internal/stream"
	"GoLex/internal/token"
)

// Default names of the two implicit token types.
const (
	DefaultErrorName = "ERROR"
	DefaultEOFName   = "EOF"
)

// eofLexeme is the lexeme of the end-of-stream sentinel token.
const eofLexeme = "EOF"

// Scanner combines token types into one tagged DFA and scans streams
// with it. Declaration order carries precedence: when two types accept
// the same lexeme, the earlier one wins.
//
// A scanner holds a lazily built DFA cache and, during a scan, a live
// matcher; it must not be shared across concurrent scans.
type Scanner struct {
	types   []*token.Type
	index   map[*token.Type]int
	errType *token.Type
	eofType *token.Type

	dfa     *automaton.Automaton
	matcher *automaton.Matcher
}

// New creates a scanner over the given token types with the default
// names for the implicit error and EOF types.
func New(types ...*token.Type) *Scanner {
	return NewWithNames(DefaultErrorName, DefaultEOFName, types...)
}

// NewWithNames creates a scanner with caller-chosen names for the two
// implicit token types.
func NewWithNames(errorName, eofName string, types ...*token.Type) *Scanner {
	index := make(map[*token.Type]int, len(types))
	for i, tt := range types {
		index[tt] = i
	}
	return &Scanner{
		types: append([]*token.Type(nil), types...),
		index: index,
		// One or more of any character: the universal matcher that
		// tags unrecognized spans. It never enters the DFA.
		errType: token.MustType(errorName, regex.For(charset.Any()).Repeated(), token.ParseWord),
		// Synthetic single-unit pattern; only the tag is ever used.
		eofType: token.MustType(eofName, regex.For(charset.Any()), token.ParseWord),
	}
}

// Types returns the declared token types in precedence order.
func (s *Scanner) Types() []*token.Type {
	return append([]*token.Type(nil), s.types...)
}

// ErrorType returns the implicit error token type.
func (s *Scanner) ErrorType() *token.Type {
	return s.errType
}

// EOFType returns the implicit end-of-stream token type.
func (s *Scanner) EOFType() *token.Type {
	return s.eofType
}

// build compiles the combined DFA once per scanner lifetime: each
// type's automaton is retagged with the type itself, the retagged
// automata form a choice, the choice is determinized, and multi-tag
// accept states are resolved to the minimum declared index.
func (s *Scanner) build() error {
	if s.dfa != nil {
		return nil
	}
	var dfa *automaton.Automaton
	if len(s.types) == 0 {
		dfa = automaton.New()
	} else {
		as := make([]*automaton.Automaton, len(s.types))
		for i, tt := range s.types {
			as[i] = tt.Pattern().Automaton().Retag(tt)
		}
		var err error
		dfa, err = automaton.Choice(as...).Determinize()
		if err != nil {
			return fmt.Errorf("build scanner automaton: %w", err)
		}
		dfa.ResolveTags(s.tieBreak)
	}
	s.dfa = dfa
	s.matcher = automaton.NewMatcher(dfa)
	return nil
}

// tieBreak picks the competing tag with the minimum declared index.
func (s *Scanner) tieBreak(tags []automaton.Tag) []automaton.Tag {
	best := tags[0]
	bestIdx, ok := s.index[best.(*token.Type)]
	if !ok {
		panic("golex: unknown tag in scanner automaton")
	}
	for _, tag := range tags[1:] {
		idx, ok := s.index[tag.(*token.Type)]
		if !ok {
			panic("golex: unknown tag in scanner automaton")
		}
		if idx < bestIdx {
			best, bestIdx = tag, idx
		}
	}
	return []automaton.Tag{best}
}

// loop states of one scan.
type loopState int

const (
	stateStart       loopState = iota // nothing consumed for this token
	stateGood                         // matching, no accept reached yet
	stateRecognizing                  // an accept reached; extending the match
	stateBad                          // consuming an unrecognized span
)

// Next scans one token. At end of input it returns the EOF sentinel;
// every call after that returns EOF again. The error is non-nil only
// when the DFA cannot be built or a value parser rejects its lexeme;
// lexical errors are returned as error tokens, not errors.
func (s *Scanner) Next(in stream.Stream) (token.Token, error) {
	if err := s.build(); err != nil {
		return token.Token{}, err
	}

	pos := in.Position()
	if !in.HasMore() {
		value, _ := s.eofType.Parse(eofLexeme)
		return token.Token{Type: s.eofType, Lexeme: eofLexeme, Position: pos, Value: value}, nil
	}

	m := s.matcher
	m.Reset()
	st := stateStart
	var lexeme, consumed []uint16

	// The anchor mark is where the stream rolls back to when lookahead
	// outruns the last accept. It starts at the token start and advances
	// with every commit until the first accept; from then on it only
	// advances on accepts.
	in.Mark()

	for in.HasMore() {
		in.Mark() // look-ahead mark at the pre-read position
		c := in.Next()
		doesMatch := m.Match(c)
		doesRecognize := m.IsRecognizing()

		if st == stateStart {
			if doesMatch {
				st = stateGood
			} else {
				st = stateBad
			}
		}

		if doesMatch != (st == stateBad) {
			// The character belongs to the current mode: commit it.
			in.Unmark()
			consumed = append(consumed, uint16(c))
			if st != stateBad && doesRecognize {
				st = stateRecognizing
				lexeme = append(lexeme, consumed...)
				consumed = consumed[:0]
				in.Unmark()
				in.Mark() // anchor now sits just past the accept
			} else if st != stateRecognizing {
				in.Unmark()
				in.Mark()
			}
		} else {
			// Mode flip: the offending character stays unread.
			in.Reset()
			break
		}
	}

	if st != stateRecognizing {
		// No accept was ever reached: the whole consumed run is an
		// error lexeme. Resetting the matcher empties last-recognized,
		// which routes the token to the error type below.
		m.Reset()
		lexeme = append(lexeme, consumed...)
	}
	in.Reset() // drop the anchor; rewinds only past un-accepted lookahead

	tt := s.errType
	if last := m.LastRecognized(); len(last) > 0 {
		tt = last[0].(*token.Type)
	}
	text := string(utf16.Decode(lexeme))
	tok := token.Token{Type: tt, Lexeme: text, Position: pos}
	value, err := tt.Parse(text)
	if err != nil {
		return tok, fmt.Errorf("parse %s lexeme %q: %w", tt.Name(), text, err)
	}
	tok.Value = value
	return tok, nil
}

// ScanAll scans the whole stream, including the trailing EOF token.
func (s *Scanner) ScanAll(in stream.Stream) ([]token.Token, error) {
	var out []token.Token
	for {
		tok, err := s.Next(in)
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Type == s.eofType {
			return out, nil
		}
	}
}
