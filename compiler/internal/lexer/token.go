package lexer

// TokKind enumerates token kinds produced by the lexer.
type TokKind int

const (
	// Special
	TokEOF     TokKind = iota
	TokNewline         // statement terminator on the same indentation level
	TokIndent          // one level deeper
	TokDedent          // one level shallower

	// Literals/identifiers
	TokIdent
	TokNumber
	TokString

	// Keywords
	TokTry
	TokFix
	TokWhen
	TokElse
	TokLoop
	TokWith
	TokRight
	TokWrong
	TokImport
	TokExport
	TokExit
	TokStop
	TokSkip

	// Punctuation
	TokLParen // (
	TokRParen // )
	TokLBrack // [
	TokRBrack // ]
	TokLBrace // {
	TokRBrace // }
	TokDot    // .
	TokComma  // ,
	TokColon  // :
	TokTilde  // ~

	// Operators
	TokEqual     // =
	TokLess      // <
	TokMore      // >
	TokPlus      // +
	TokMinus     // -
	TokStar      // *
	TokSlash     // /
	TokBar       // |
	TokBackslash // \
	TokAt        // @
	TokDollar    // $
	TokAnd       // &
	TokBang      // !
	TokBangEqual // !=
	TokBangLess  // !<
	TokBangMore  // !>
)

var kindNames = [...]string{
	TokEOF:     "EndOfFile",
	TokNewline: "NewLine",
	TokIndent:  "Indent",
	TokDedent:  "Dedent",

	TokIdent:  "Identifier",
	TokNumber: "NumericLiteral",
	TokString: "StringLiteral",

	TokTry:    "Try",
	TokFix:    "Fix",
	TokWhen:   "When",
	TokElse:   "Else",
	TokLoop:   "Loop",
	TokWith:   "With",
	TokRight:  "Right",
	TokWrong:  "Wrong",
	TokImport: "Import",
	TokExport: "Export",
	TokExit:   "Exit",
	TokStop:   "Stop",
	TokSkip:   "Skip",

	TokLParen: "LeftRoundBracket",
	TokRParen: "RightRoundBracket",
	TokLBrack: "LeftSquareBracket",
	TokRBrack: "RightSquareBracket",
	TokLBrace: "LeftCurlyBracket",
	TokRBrace: "RightCurlyBracket",
	TokDot:    "Dot",
	TokComma:  "Comma",
	TokColon:  "Colon",
	TokTilde:  "Tilde",

	TokEqual:     "Equal",
	TokLess:      "LessThan",
	TokMore:      "MoreThan",
	TokPlus:      "Plus",
	TokMinus:     "Minus",
	TokStar:      "Asterisk",
	TokSlash:     "Slash",
	TokBar:       "Bar",
	TokBackslash: "BackSlash",
	TokAt:        "At",
	TokDollar:    "Dollar",
	TokAnd:       "And",
	TokBang:      "ExclamationMark",
	TokBangEqual: "ExclamationMarkEqual",
	TokBangLess:  "ExclamationMarkLessThan",
	TokBangMore:  "ExclamationMarkMoreThan",
}

func (k TokKind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsTerminator reports whether k ends a simple statement.
func (k TokKind) IsTerminator() bool {
	return k == TokNewline || k == TokDedent || k == TokEOF
}

// Token is a single lexeme with its source line.
// Lit holds the cooked value of a string literal; for every other kind it
// equals Lex.
type Token struct {
	Kind TokKind
	Lex  string
	Lit  string
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case TokEOF, TokNewline, TokIndent, TokDedent:
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Lex + ")"
}
