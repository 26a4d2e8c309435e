package lexer

import (
	"reflect"
	"testing"

	"github.com/utkrisht/uki/compiler/internal/diag"
)

func lex(src string) ([]Token, *diag.List) {
	diags := diag.NewList(false, nil)
	return Tokenize(src, diags), diags
}

func kindsFrom(src string) []TokKind {
	toks, _ := lex(src)
	kinds := make([]TokKind, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}

func expectKinds(t *testing.T, src string, want ...TokKind) {
	t.Helper()
	ks := kindsFrom(src)
	if len(ks) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(ks), len(want), ks)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("ks[%d]=%v, want %v (full=%v)", i, ks[i], want[i], ks)
		}
	}
}

func keys(d *diag.List) []string {
	var out []string
	for _, it := range d.Items() {
		out = append(out, it.Key)
	}
	return out
}

func TestEmptyAndBlank(t *testing.T) {
	expectKinds(t, "", TokEOF)
	expectKinds(t, "\n\n# only a comment\n   \n", TokEOF)
	if _, d := lex("\n  \n# c\n"); d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
}

func TestStatementsAndNewlines(t *testing.T) {
	expectKinds(t, "a ~ 1\nb ~ 2\n",
		TokIdent, TokTilde, TokNumber, TokNewline,
		TokIdent, TokTilde, TokNumber,
		TokEOF,
	)
}

func TestIndentDedent(t *testing.T) {
	src := "" +
		"when x\n" +
		"    show 1\n" +
		"show 2\n"
	expectKinds(t, src,
		TokWhen, TokIdent,
		TokIndent,
		TokIdent, TokNumber,
		TokDedent,
		TokIdent, TokNumber,
		TokEOF,
	)
}

func TestDedentsFlushedAtEOF(t *testing.T) {
	src := "when x\n  when y\n    z\n"
	expectKinds(t, src,
		TokWhen, TokIdent, TokIndent,
		TokWhen, TokIdent, TokIndent,
		TokIdent,
		TokDedent, TokDedent,
		TokEOF,
	)
}

func TestLineNumbers(t *testing.T) {
	toks, _ := lex("when x\n  y\nz")
	want := []int{1, 1, 2, 2, 3, 3, 3}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d (%v)", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Line != want[i] {
			t.Errorf("toks[%d]=%v on line %d, want %d", i, tok, tok.Line, want[i])
		}
	}

	toks, _ = lex("a\nb")
	if toks[1].Kind != TokNewline || toks[1].Line != 1 || toks[1].Lex != "\n" {
		t.Fatalf("newline token = %+v, want NewLine on line 1", toks[1])
	}
}

func TestIndentWidthFixedByFirstIndentedLine(t *testing.T) {
	lx := New("when a\n   b\n", nil)
	lx.Run()
	if lx.IndentWidth() != 3 {
		t.Fatalf("indent width = %d, want 3", lx.IndentWidth())
	}
}

func TestRejectedIndentEmitsNoStructure(t *testing.T) {
	// the misaligned line joins the previous one
	expectKinds(t, "when a\n    b\n  c\n",
		TokWhen, TokIdent, TokIndent, TokIdent, TokIdent, TokDedent, TokEOF)
	expectKinds(t, "when a\n  b\n      c\n",
		TokWhen, TokIdent, TokIndent, TokIdent, TokIdent, TokDedent, TokEOF)
}

func TestIndentationErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		key  string
		line int
	}{
		{"multi-level", "when a\n  b\n      c\n", keyMultiLevelIndent, 3},
		{"inconsistent", "when a\n    b\n  c\n", keyInconsistentIndent, 3},
		{"tab", "a\n\tb\n", keyTabIndent, 2},
		{"start of file", "   aaa", keyStartIndent, 1},
		{"stray carriage return", "a\rb", keyStrayCR, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, d := lex(tc.src)
			items := d.Items()
			if len(items) != 1 {
				t.Fatalf("got %d diagnostics %v, want 1", len(items), items)
			}
			if items[0].Key != tc.key || items[0].Line != tc.line {
				t.Fatalf("got %s on line %d, want %s on line %d", items[0].Key, items[0].Line, tc.key, tc.line)
			}
			if items[0].Domain != diag.DomainLexer {
				t.Fatalf("domain = %q", items[0].Domain)
			}
		})
	}
}

func TestStartIndentStillLexes(t *testing.T) {
	toks, _ := lex("   aaa")
	if len(toks) != 2 || toks[0].Kind != TokIdent || toks[0].Lex != "aaa" {
		t.Fatalf("got %v, want Identifier(aaa) EndOfFile", toks)
	}
}

func TestMultiLevelIndentKeepsBalance(t *testing.T) {
	expectKinds(t, "when a\n  b\n      c\n",
		TokWhen, TokIdent, TokIndent,
		TokIdent, TokIdent,
		TokDedent,
		TokEOF,
	)
}

func TestCRLF(t *testing.T) {
	expectKinds(t, "a\r\nb\r\n", TokIdent, TokNewline, TokIdent, TokEOF)
	if _, d := lex("when a\r\n  b\r\n\r\nc\r\n"); d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
}

func TestContinuationAfterCommaAndBracket(t *testing.T) {
	expectKinds(t, "f(1,\n2)\n",
		TokIdent, TokLParen, TokNumber, TokComma, TokNumber, TokRParen, TokEOF)
	expectKinds(t, "f(\n1)\n",
		TokIdent, TokLParen, TokNumber, TokRParen, TokEOF)
	expectKinds(t, "f(1, # first\n\n2)\n",
		TokIdent, TokLParen, TokNumber, TokComma, TokNumber, TokRParen, TokEOF)
}

func TestContinuationKeepsIndent(t *testing.T) {
	expectKinds(t, "f(1,\n  2)\n",
		TokIdent, TokLParen, TokNumber, TokComma, TokIndent, TokNumber, TokRParen, TokDedent, TokEOF)
}

func TestNumbers(t *testing.T) {
	toks, d := lex("-12 + 3.5 - x +7 1.")
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	want := []Token{
		{Kind: TokNumber, Lex: "-12"},
		{Kind: TokPlus, Lex: "+"},
		{Kind: TokNumber, Lex: "3.5"},
		{Kind: TokMinus, Lex: "-"},
		{Kind: TokIdent, Lex: "x"},
		{Kind: TokNumber, Lex: "+7"},
		{Kind: TokNumber, Lex: "1"},
		{Kind: TokDot, Lex: "."},
		{Kind: TokEOF, Lex: ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v", toks)
	}
	for i := range want {
		if toks[i].Kind != want[i].Kind || toks[i].Lex != want[i].Lex {
			t.Fatalf("toks[%d]=%v, want %v", i, toks[i], want[i])
		}
	}
}

func TestOperators(t *testing.T) {
	expectKinds(t, "!= !< !> ! = < > * / | \\ @ $ & . : ~ { } [ ] ( )",
		TokBangEqual, TokBangLess, TokBangMore, TokBang,
		TokEqual, TokLess, TokMore, TokStar, TokSlash, TokBar, TokBackslash,
		TokAt, TokDollar, TokAnd, TokDot, TokColon, TokTilde,
		TokLBrace, TokRBrace, TokLBrack, TokRBrack, TokLParen, TokRParen,
		TokEOF,
	)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	expectKinds(t, "try fix when else loop with right wrong import export exit stop skip user-name x2",
		TokTry, TokFix, TokWhen, TokElse, TokLoop, TokWith, TokRight, TokWrong,
		TokImport, TokExport, TokExit, TokStop, TokSkip, TokIdent, TokIdent,
		TokEOF,
	)
	toks, _ := lex("user-name")
	if toks[0].Lex != "user-name" {
		t.Fatalf("kebab identifier split: %v", toks)
	}
}

func TestBadCharacters(t *testing.T) {
	toks, d := lex("aBc")
	if got := keys(d); !reflect.DeepEqual(got, []string{keyBigLetter}) {
		t.Fatalf("diagnostics = %v", got)
	}
	if len(toks) != 3 || toks[0].Lex != "a" || toks[1].Lex != "c" {
		t.Fatalf("got %v, want Identifier(a) Identifier(c) EndOfFile", toks)
	}

	_, d = lex("a ; b")
	if got := keys(d); !reflect.DeepEqual(got, []string{keyInvalidChar}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestSingleLineString(t *testing.T) {
	toks, d := lex(`show "hi there"`)
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	s := toks[1]
	if s.Kind != TokString || s.Lex != `"hi there"` || s.Lit != "hi there" {
		t.Fatalf("string token = %+v", s)
	}
}

func TestSingleLineStringErrors(t *testing.T) {
	toks, d := lex(`"abc`)
	if got := keys(d); !reflect.DeepEqual(got, []string{keyUnterminatedString}) {
		t.Fatalf("diagnostics = %v", got)
	}
	if len(toks) != 1 || toks[0].Kind != TokEOF {
		t.Fatalf("got %v, want only EndOfFile", toks)
	}

	_, d = lex("\"abc\nd")
	if got := keys(d); !reflect.DeepEqual(got, []string{keyNewlineInString}) {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestMultilineString(t *testing.T) {
	src := "" +
		"message ~ \"\n" +
		"    hello\n" +
		"      world\n" +
		"\"\n" +
		"show message\n"
	lx := New(src, nil)
	toks := lx.Run()
	want := []TokKind{TokIdent, TokTilde, TokString, TokNewline, TokIdent, TokIdent, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v", toks)
	}
	for i := range want {
		if toks[i].Kind != want[i] {
			t.Fatalf("toks[%d]=%v, want %v", i, toks[i], want[i])
		}
	}
	if toks[2].Lit != "hello\n  world" || toks[2].Line != 1 {
		t.Fatalf("string = %q on line %d", toks[2].Lit, toks[2].Line)
	}
	if lx.IndentWidth() != 4 {
		t.Fatalf("indent width = %d, want 4", lx.IndentWidth())
	}
}

func TestMultilineStringInBlock(t *testing.T) {
	src := "when x\n  s ~ \"\n    a\n  \"\n"
	toks, d := lex(src)
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	want := []TokKind{TokWhen, TokIdent, TokIndent, TokIdent, TokTilde, TokString, TokDedent, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v", toks)
	}
	if toks[5].Lit != "a" {
		t.Fatalf("string = %q", toks[5].Lit)
	}
}

func TestMultilineStringErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		key  string
		line int
	}{
		{"closing under-indented", "when x\n  s ~ \"\n    a\n\"\n", keyMultilineClosing, 4},
		{"content under-indented", "s ~ \"\n    a\n  b\n\"\n", keyMultilineIndent, 3},
		{"inline closing quote", "s ~ \"\n    a\"\n\"\n", keyMultilineInlineQuote, 2},
		{"unterminated", "s ~ \"\n    a\n", keyUnterminatedMultiline, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, d := lex(tc.src)
			items := d.Items()
			if len(items) == 0 {
				t.Fatalf("expected a diagnostic")
			}
			if items[0].Key != tc.key || items[0].Line != tc.line {
				t.Fatalf("first diagnostic %s on line %d, want %s on line %d", items[0].Key, items[0].Line, tc.key, tc.line)
			}
			if toks[len(toks)-1].Kind != TokEOF {
				t.Fatalf("stream does not end with EndOfFile: %v", toks)
			}
		})
	}
}

func TestStreamInvariants(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"when a\n  b\n    c\n  d\ne\n",
		"when a\n  b\n      c\n",
		"when a\n    b\n  c\n",
		"f(1,\n  2,\n    3)\n",
		"\"abc\n  \"x\n",
		"when x\n  s ~ \"\n    a\n\"\n",
		"A B C \t ;;;",
	}
	for _, src := range inputs {
		toks, _ := lex(src)
		eofs, depth := 0, 0
		for i, tok := range toks {
			switch tok.Kind {
			case TokEOF:
				eofs++
				if i != len(toks)-1 {
					t.Errorf("%q: EndOfFile at %d of %d", src, i, len(toks))
				}
			case TokIndent:
				depth++
			case TokDedent:
				depth--
				if depth < 0 {
					t.Errorf("%q: Dedent without Indent", src)
				}
			}
		}
		if eofs != 1 || depth != 0 {
			t.Errorf("%q: eofs=%d depth=%d (%v)", src, eofs, depth, toks)
		}
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	src := "when x\n  y ~ \"\n    z\n  \"\n  f(1,\n  2)\n"
	a, da := lex(src)
	b, db := lex(src)
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(da.Items(), db.Items()) {
		t.Fatalf("two runs differ:\n%v\n%v", a, b)
	}
}

func TestIsIdentifier(t *testing.T) {
	for s, want := range map[string]bool{
		"name":      true,
		"user-name": true,
		"x2":        true,
		"":          false,
		"when":      false,
		"Name":      false,
		"2x":        false,
		"-x":        false,
	} {
		if got := IsIdentifier(s); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", s, got, want)
		}
	}
}
