// Package lexer turns source text into the token stream internal/parser consumes.
//
// Tokenizing happens eagerly and in two phases, the way the language this was
// distilled from splits it: a physical pass assembles one logical line at a time
// (decoding string escapes and stripping comments as it goes), then a line pass
// turns each logical line into Indent/Dedent/lexeme tokens. See SPEC_FULL.md §4.3
// for why escape decoding lives entirely in the physical pass.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tinypy-lang/tinypy/internal/diagnostics"
	"github.com/tinypy-lang/tinypy/internal/langconf"
	"github.com/tinypy-lang/tinypy/internal/token"
)

// LexerError is returned by the Expect family when a consumer's assumption
// about the current or next token doesn't hold (spec.md §7.1 "Lexical").
type LexerError struct {
	Msg  string
	Line int
	Col  int
}

func (e *LexerError) Error() string { return e.Msg }

// ToDiagnostic reports e through the shared diagnostics.Diagnostic type
// (SPEC_FULL.md §2.2), uniformly with parser and evaluator failures.
func (e *LexerError) ToDiagnostic() *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.Lexical, e.Line, e.Col, e.Msg)
}

// Lexer holds the fully-tokenized stream and a cursor into it. Once the cursor
// reaches the end it stays on Eof forever.
type Lexer struct {
	tokens []token.Token
	pos    int
}

// New tokenizes source in full and returns a Lexer positioned at the first token.
func New(source string) *Lexer {
	l := &Lexer{}
	l.tokenize(source)
	return l
}

// Current returns the token at the cursor.
func (l *Lexer) Current() token.Token {
	if len(l.tokens) == 0 {
		panic("lexer: Current called on an empty token buffer")
	}
	if l.pos >= len(l.tokens) {
		return l.tokens[len(l.tokens)-1]
	}
	return l.tokens[l.pos]
}

// Next advances the cursor and returns the new current token.
func (l *Lexer) Next() token.Token {
	if len(l.tokens) == 0 {
		panic("lexer: Next called on an empty token buffer")
	}
	if l.pos < len(l.tokens)-1 {
		l.pos++
	}
	return l.Current()
}

// Expect checks that the current token has the given kind.
func (l *Lexer) Expect(kind token.Kind) (token.Token, error) {
	cur := l.Current()
	if !cur.Is(kind) {
		return token.Token{}, &LexerError{Msg: fmt.Sprintf("expected %s, got %s", kind, cur.Kind), Line: cur.Line, Col: cur.Column}
	}
	return cur, nil
}

// ExpectValue checks that the current token has the given kind and payload.
func (l *Lexer) ExpectValue(kind token.Kind, value any) error {
	cur, err := l.Expect(kind)
	if err != nil {
		return err
	}
	if !payloadEquals(cur, value) {
		return &LexerError{Msg: fmt.Sprintf("incorrect value for current token %s", kind), Line: cur.Line, Col: cur.Column}
	}
	return nil
}

// ExpectNext advances the cursor, then checks that the new current token has
// the given kind.
func (l *Lexer) ExpectNext(kind token.Kind) (token.Token, error) {
	l.Next()
	return l.Expect(kind)
}

// ExpectNextValue advances the cursor, then checks kind and payload.
func (l *Lexer) ExpectNextValue(kind token.Kind, value any) error {
	l.Next()
	return l.ExpectValue(kind, value)
}

func payloadEquals(t token.Token, value any) bool {
	switch v := value.(type) {
	case int32:
		return t.Num == v
	case int:
		return t.Num == int32(v)
	case string:
		return t.Str == v
	case byte:
		return t.Ch == v
	default:
		return false
	}
}

// rawLine is one logical line produced by the physical pass: content with
// string escapes already decoded, delimiter quotes retained but decoded
// quote characters replaced with a sentinel (see quoteSentinelSingle/Double),
// comments and blank lines removed, tagged with the source line it started on.
type rawLine struct {
	text string
	line int
}

// quoteSentinelSingle and quoteSentinelDouble stand in for a quote character
// produced by decoding \' or \" in the physical pass. A decoded quote is
// content, not a delimiter, but the line pass re-derives string-literal
// spans by scanning for quote bytes; writing the real quote byte would let
// it terminate the literal early on a decoded \" the way a real closing
// quote would (e.g. "a\" b" lexing as String("a") followed by a stray Id).
// These bytes never occur in ASCII source (spec.md's input grammar is
// ASCII-only) so they can't collide with anything the lexer would otherwise
// see; classify converts them back to real quote bytes once a literal's
// span is known.
const (
	quoteSentinelSingle = 0x01
	quoteSentinelDouble = 0x02
)

// splitLogicalLines implements spec.md §4.B phase 1.
func splitLogicalLines(src string) []rawLine {
	var lines []rawLine
	var buf strings.Builder
	inString := false
	var quote byte
	lineNum := 1
	startLine := 1
	n := len(src)

	for i := 0; i < n; {
		ch := src[i]

		if buf.Len() == 0 && ch == '\n' {
			lineNum++
			i++
			continue
		}
		if buf.Len() == 0 {
			startLine = lineNum
		}

		if inString {
			if ch == '\\' && i+1 < n {
				if decoded, ok := langconf.Escapes[src[i+1]]; ok {
					switch decoded {
					case '"':
						buf.WriteByte(quoteSentinelDouble)
					case '\'':
						buf.WriteByte(quoteSentinelSingle)
					default:
						buf.WriteByte(decoded)
					}
				}
				i += 2
				continue
			}
			buf.WriteByte(ch)
			if ch == quote {
				inString = false
			}
			i++
			continue
		}

		switch {
		case ch == '\'' || ch == '"':
			inString = true
			quote = ch
			buf.WriteByte(ch)
			i++
		case ch == '\n':
			lines = append(lines, rawLine{text: buf.String(), line: startLine})
			buf.Reset()
			lineNum++
			i++
		case ch == '#':
			if buf.Len() > 0 {
				lines = append(lines, rawLine{text: buf.String(), line: startLine})
				buf.Reset()
			}
			for i < n && src[i] != '\n' {
				i++
			}
		default:
			buf.WriteByte(ch)
			i++
		}
	}
	if buf.Len() > 0 {
		lines = append(lines, rawLine{text: buf.String(), line: startLine})
	}
	return lines
}

// tokenize implements spec.md §4.B phase 2 over every logical line, tracking
// indentation depth across the whole file.
func (l *Lexer) tokenize(src string) {
	rawLines := splitLogicalLines(src)
	depth := 0
	var tokens []token.Token

	for _, rl := range rawLines {
		spaces := 0
		for spaces < len(rl.text) && rl.text[spaces] == ' ' {
			spaces++
		}
		rest := rl.text[spaces:]
		if rest == "" {
			// Whitespace-only line: no content, no indentation change, no Newline.
			continue
		}

		pos := depth * langconf.IndentWidth
		for pos < spaces {
			tokens = append(tokens, token.New(token.INDENT, rl.line, 0))
			depth++
			pos = depth * langconf.IndentWidth
		}
		for pos > spaces {
			tokens = append(tokens, token.New(token.DEDENT, rl.line, 0))
			depth--
			pos = depth * langconf.IndentWidth
		}

		tokens = append(tokens, lexLine(rest, rl.line, spaces)...)
		tokens = append(tokens, token.New(token.NEWLINE, rl.line, 0))
	}

	if n := len(tokens); n > 0 && tokens[n-1].Kind != token.NEWLINE {
		tokens = append(tokens, token.New(token.NEWLINE, 0, 0))
	}
	for depth > 0 {
		tokens = append(tokens, token.New(token.DEDENT, 0, 0))
		depth--
	}
	tokens = append(tokens, token.New(token.EOF, 0, 0))

	l.tokens = tokens
}

// lexLine splits one already-indentation-stripped logical line into lexemes.
func lexLine(rest string, line, colBase int) []token.Token {
	var tokens []token.Token
	var substr strings.Builder
	substrCol := colBase

	flush := func() {
		if substr.Len() == 0 {
			return
		}
		tokens = append(tokens, classify(substr.String(), line, substrCol)...)
		substr.Reset()
	}

	inString := false
	var quote byte

	for i := 0; i < len(rest); i++ {
		ch := rest[i]

		if inString {
			substr.WriteByte(ch)
			if ch == quote {
				inString = false
			}
			continue
		}

		switch {
		case ch == '\'' || ch == '"':
			if substr.Len() == 0 {
				substrCol = colBase + i
			}
			inString = true
			quote = ch
			substr.WriteByte(ch)
		case langconf.IsArithmetic(ch):
			flush()
			tokens = append(tokens, token.Char(ch, line, colBase+i))
		case ch == ' ':
			flush()
		case langconf.IsPunctuation(ch):
			flush()
			tokens = append(tokens, token.Char(ch, line, colBase+i))
		default:
			if substr.Len() == 0 {
				substrCol = colBase + i
			}
			substr.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// classify turns one completed lexeme buffer into its token(s). Keywords and
// operators are tried by exact match before falling back to the
// first-character dispatch (spec.md §9 note (g): identifier validity is only
// ever checked on the first byte).
func classify(s string, line, col int) []token.Token {
	if kind, ok := token.Keywords[s]; ok {
		return []token.Token{token.New(kind, line, col)}
	}
	if kind, ok := token.Operators[s]; ok {
		return []token.Token{token.New(kind, line, col)}
	}

	first := s[0]
	switch {
	case first == '_' || isAlpha(first):
		return []token.Token{token.Id(s, line, col)}
	case isAllDigits(s):
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			n = 0
		}
		return []token.Token{token.Number(int32(n), line, col)}
	case first == '"' || first == '\'':
		inner := ""
		if len(s) >= 2 {
			inner = s[1 : len(s)-1]
		}
		return []token.Token{token.StringLit(unescapeQuoteSentinels(inner), line, col)}
	default:
		toks := make([]token.Token, 0, len(s))
		for i := 0; i < len(s); i++ {
			toks = append(toks, token.Char(s[i], line, col+i))
		}
		return toks
	}
}

// unescapeQuoteSentinels restores the quote bytes quoteSentinelSingle/Double
// stood in for during the physical pass, once a string literal's span has
// been correctly identified by the line pass.
func unescapeQuoteSentinels(s string) string {
	if !strings.ContainsAny(s, string([]byte{quoteSentinelSingle, quoteSentinelDouble})) {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		switch c {
		case quoteSentinelDouble:
			b[i] = '"'
		case quoteSentinelSingle:
			b[i] = '\''
		}
	}
	return string(b)
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
