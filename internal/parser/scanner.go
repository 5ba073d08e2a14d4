package parser

import "fmt"

// TokenType classifies scanned tokens.
type TokenType int

const (
	TokenUnknown TokenType = iota
	TokenEOF
	TokenIdent
	TokenNumber
	TokenVar
	TokenOperator
)

// Position locates a token in its source file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// Token is one lexical element of notation source. Variable tokens carry
// the name without the leading '$'.
type Token struct {
	Type TokenType
	Text string
	Pos  Position
}

func (t Token) isEOF() bool { return t.Type == TokenEOF }

// fmtPos formats a position for error messages.
func fmtPos(pos Position) string {
	if pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// Tokenize scans src into tokens, ending with a TokenEOF entry.
// '#' starts a comment running to end of line.
func Tokenize(filename string, src []byte) ([]Token, error) {
	s := &scanner{filename: filename, src: src, line: 1, column: 1}

	var tokens []Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.isEOF() {
			return tokens, nil
		}
	}
}

type scanner struct {
	filename string
	src      []byte
	pos      int
	line     int
	column   int
}

func (s *scanner) position() Position {
	return Position{Filename: s.filename, Line: s.line, Column: s.column}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// advance consumes one byte, tracking line and column.
func (s *scanner) advance() byte {
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentByte(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// next scans past whitespace and comments to the following token.
func (s *scanner) next() (Token, error) {
	for !s.eof() {
		switch ch := s.peek(); {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.advance()
		case ch == '#':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return s.scanToken()
		}
	}
	return Token{Type: TokenEOF, Pos: s.position()}, nil
}

func (s *scanner) scanToken() (Token, error) {
	pos := s.position()

	switch ch := s.peek(); {
	case isLetter(ch) || ch == '_':
		return Token{Type: TokenIdent, Text: s.scanIdent(), Pos: pos}, nil
	case isDigit(ch):
		return Token{Type: TokenNumber, Text: s.scanNumber(), Pos: pos}, nil
	case ch == '$':
		s.advance()
		if next := s.peek(); !isLetter(next) && next != '_' {
			return Token{}, fmt.Errorf("expected variable name after '$' at %s", fmtPos(pos))
		}
		return Token{Type: TokenVar, Text: s.scanIdent(), Pos: pos}, nil
	}

	ch := s.advance()
	switch ch {
	case '{', '}', ':', ';', ',', '|', '!', '(', ')', '+', '-':
		return Token{Type: TokenOperator, Text: string(ch), Pos: pos}, nil
	case '=':
		if s.peek() == '=' {
			s.advance()
			return Token{Type: TokenOperator, Text: "==", Pos: pos}, nil
		}
		return Token{Type: TokenOperator, Text: "=", Pos: pos}, nil
	case '<', '>':
		if s.peek() != '=' {
			return Token{}, fmt.Errorf("unexpected character %q at %s (only %q and %q compare)", string(ch), fmtPos(pos), "<=", ">=")
		}
		s.advance()
		return Token{Type: TokenOperator, Text: string(ch) + "=", Pos: pos}, nil
	case '.':
		if s.peek() != '.' {
			return Token{}, fmt.Errorf("unexpected character %q at %s (ranges use %q)", ".", fmtPos(pos), "..")
		}
		s.advance()
		return Token{Type: TokenOperator, Text: "..", Pos: pos}, nil
	}

	return Token{}, fmt.Errorf("unexpected character %q at %s", string(ch), fmtPos(pos))
}

func (s *scanner) scanIdent() string {
	start := s.pos
	for !s.eof() && isIdentByte(s.peek()) {
		s.advance()
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) scanNumber() string {
	start := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.advance()
	}
	return string(s.src[start:s.pos])
}
