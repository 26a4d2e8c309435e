package lexer

// Character classes are ASCII-only; anything else is an invalid character.

func isDigit(r rune) bool       { return r >= '0' && r <= '9' }
func isSmallLetter(r rune) bool { return r >= 'a' && r <= 'z' }
func isBigLetter(r rune) bool   { return r >= 'A' && r <= 'Z' }

// isIdentPart reports whether r may continue an identifier: kebab-case
// names like `user-name` are single identifiers.
func isIdentPart(r rune) bool {
	return isSmallLetter(r) || isDigit(r) || r == '-'
}

var keywords = map[string]TokKind{
	"try":    TokTry,
	"fix":    TokFix,
	"when":   TokWhen,
	"else":   TokElse,
	"loop":   TokLoop,
	"with":   TokWith,
	"right":  TokRight,
	"wrong":  TokWrong,
	"import": TokImport,
	"export": TokExport,
	"exit":   TokExit,
	"stop":   TokStop,
	"skip":   TokSkip,
}

// keywordKind maps identifiers to keyword tokens.
func keywordKind(s string) (TokKind, bool) {
	k, ok := keywords[s]
	return k, ok
}

// IsKeyword reports whether s is reserved.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsIdentifier reports whether s lexes as a single non-keyword identifier.
func IsIdentifier(s string) bool {
	if s == "" || IsKeyword(s) {
		return false
	}
	for i, r := range s {
		if i == 0 && !isSmallLetter(r) {
			return false
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}
