package token

import "unicode"

type Type int

const (
	LBrace Type = iota
	RBrace
	LParen
	RParen
	Colon
	Semicolon
	Comma
	Assign
	Greater
	Plus
	Minus
	Star
	Slash
	Ident
	Number
	String
)

func (t Type) String() string {
	switch t {
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Colon:
		return "':'"
	case Semicolon:
		return "';'"
	case Comma:
		return "','"
	case Assign:
		return "'='"
	case Greater:
		return "'>'"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Star:
		return "'*'"
	case Slash:
		return "'/'"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '.' || r == '$' || r == '\\'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '.' || r == '$' || r == '\\' || r == '-' || r == '/'
}

// Tokenize splits linker script source into tokens. Block comments and
// preprocessor-style line comments are stripped; runes that belong to
// no token (such as the '!' in attribute lists) are skipped.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			i++
			continue
		}

		// Preprocessor remnant in a generated script
		if r == '#' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// A '/' standing alone is division; attached to a name it is
		// part of the name, as in /DISCARD/ or a library path.
		if r == '/' {
			if i+1 >= len(runes) || !isIdentPart(runes[i+1]) || unicode.IsDigit(runes[i+1]) {
				tokens = append(tokens, Token{"/", Slash, line})
				continue
			}
			start := i
			i++
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		switch r {
		case '{':
			tokens = append(tokens, Token{"{", LBrace, line})
			continue
		case '}':
			tokens = append(tokens, Token{"}", RBrace, line})
			continue
		case '(':
			tokens = append(tokens, Token{"(", LParen, line})
			continue
		case ')':
			tokens = append(tokens, Token{")", RParen, line})
			continue
		case ':':
			tokens = append(tokens, Token{":", Colon, line})
			continue
		case ';':
			tokens = append(tokens, Token{";", Semicolon, line})
			continue
		case ',':
			tokens = append(tokens, Token{",", Comma, line})
			continue
		case '=':
			tokens = append(tokens, Token{"=", Assign, line})
			continue
		case '>':
			tokens = append(tokens, Token{">", Greater, line})
			continue
		case '+':
			tokens = append(tokens, Token{"+", Plus, line})
			continue
		case '-':
			tokens = append(tokens, Token{"-", Minus, line})
			continue
		case '*':
			tokens = append(tokens, Token{"*", Star, line})
			continue
		}

		// String literal (quoted section or file name)
		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), String, line})
			continue
		}

		// Number with optional radix prefix and K/M/G scale suffix
		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || c == 'x' || c == 'X' ||
					(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
					c == 'K' || c == 'k' || c == 'M' || c == 'm' ||
					c == 'G' || c == 'g' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		if isIdentStart(r) {
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}
	}

	return tokens
}
