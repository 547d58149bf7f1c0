package substitution

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	openCode
	closeCode
	identifierCode
	textCode
	argumentCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	openToken       = parsly.NewToken(openCode, "$(", &openMatcher{})
	closeToken      = parsly.NewToken(closeCode, ")", matcher.NewByte(')'))
	identifierToken = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	textToken       = parsly.NewToken(textCode, "Text", &textMatcher{})
	argumentToken   = parsly.NewToken(argumentCode, "Argument", &argumentMatcher{})
)

// openMatcher matches the "$(" substitution opening
type openMatcher struct{}

func (m *openMatcher) Match(cursor *parsly.Cursor) int {
	if isOpening(cursor.Input, cursor.Pos, cursor.InputSize) {
		return 2
	}
	return 0
}

// identifierMatcher matches substitution names such as var, env or dirname
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || !isLetter(input[pos]) {
		return 0
	}
	matched := 1
	for i := pos + 1; i < cursor.InputSize; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' || input[i] == '-' {
			matched++
			continue
		}
		break
	}
	return matched
}

// textMatcher matches top level text up to the next "$("
type textMatcher struct{}

func (m *textMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isOpening(cursor.Input, i, cursor.InputSize) {
			break
		}
		matched++
	}
	return matched
}

// argumentMatcher matches a quoted argument or a bare one ending at whitespace, ')' or "$("
type argumentMatcher struct{}

func (m *argumentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	if quote := input[pos]; quote == '\'' || quote == '"' {
		for i := pos + 1; i < size; i++ {
			if input[i] == quote {
				return i - pos + 1
			}
		}
		return 0
	}
	matched := 0
	for i := pos; i < size; i++ {
		if isWhitespace(input[i]) || input[i] == ')' || isOpening(input, i, size) {
			break
		}
		matched++
	}
	return matched
}

func isOpening(input []byte, pos, size int) bool {
	return pos+1 < size && input[pos] == '$' && input[pos+1] == '('
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
