package diag

import (
	"bytes"
	"strings"
	"testing"
)

type recorder struct{ got []Diagnostic }

func (r *recorder) Print(d Diagnostic) { r.got = append(r.got, d) }

func TestListAppendOrder(t *testing.T) {
	l := NewList(false, nil)
	l.Report(DomainLexer, "tab_indent", 3, "tabs not supported for indentation, use spaces")
	l.Reportf(DomainParser, "unexpected_token", 1, "expected %s, but got %s", "Tilde", "NewLine")

	if l.Len() != 2 || !l.HasErrors() {
		t.Fatalf("Len = %d, HasErrors = %v", l.Len(), l.HasErrors())
	}
	items := l.Items()
	if items[0].Line != 3 || items[1].Msg != "expected Tilde, but got NewLine" {
		t.Errorf("items = %+v", items)
	}
	items[0].Line = 99
	if l.Items()[0].Line != 3 {
		t.Error("Items must return a copy")
	}
}

func TestEmitMirrorsToPrinter(t *testing.T) {
	r := &recorder{}
	l := NewList(true, r)
	l.Report(DomainLexer, "big_letter", 2, "big letters not allowed in identifiers")
	if len(r.got) != 1 || r.got[0].Line != 2 {
		t.Fatalf("printer got %+v", r.got)
	}

	l.Emit = false
	l.Report(DomainLexer, "big_letter", 4, "big letters not allowed in identifiers")
	if len(r.got) != 1 {
		t.Errorf("printer called with Emit off")
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	l := NewList(true, PlainPrinter{W: &buf})
	l.Report(DomainLexer, "invalid_character", 7, `invalid character '$'`)
	if got, want := buf.String(), "Error on line 7: invalid character '$'\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{Line: 5, Msg: "boom"}
	if d.Error() != "line 5: boom" {
		t.Errorf("Error() = %q", d.Error())
	}
	if (Diagnostic{Msg: "boom"}).Error() != "boom" {
		t.Error("line 0 should omit the prefix")
	}
}

func TestCatalog(t *testing.T) {
	if err := LoadError(); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	keys := map[string][]string{
		DomainLexer: {
			"start_indent", "inconsistent_indent", "multi_level_indent", "tab_indent",
			"stray_carriage_return", "big_letter", "invalid_character",
			"unterminated_string", "newline_in_string", "unterminated_multiline_string",
			"multiline_insufficient_indent", "multiline_closing_indent", "multiline_inline_quote",
		},
		DomainParser: {
			"unexpected_token", "expected_expression", "else_without_when", "fix_without_try",
			"with_without_loop", "module_outside_module_mode", "else_after_catch_all",
			"expected_loop_clause",
		},
	}
	for domain, ks := range keys {
		for _, k := range ks {
			ce, ok := Lookup(domain, k)
			if !ok || ce.ID == "" || ce.Title == "" {
				t.Errorf("Lookup(%s, %s) = %+v, %v", domain, k, ce, ok)
			}
		}
	}

	seen := map[string]bool{}
	entries := Entries()
	for i, r := range entries {
		if seen[r.Entry.ID] {
			t.Errorf("duplicate ID %s", r.Entry.ID)
		}
		seen[r.Entry.ID] = true
		if i > 0 && entries[i-1].Entry.ID > r.Entry.ID {
			t.Errorf("Entries not sorted at %d", i)
		}
	}
}

func TestFind(t *testing.T) {
	for _, q := range []string{"ULE0004", "ule0004", " tab_indent "} {
		r, ok := Find(q)
		if !ok || r.Key != "tab_indent" || r.Domain != DomainLexer {
			t.Errorf("Find(%q) = %+v, %v", q, r, ok)
		}
	}
	if _, ok := Find("nonsense"); ok {
		t.Error("Find(nonsense) should fail")
	}
}

func TestCode(t *testing.T) {
	d := Diagnostic{Domain: DomainParser, Key: "else_without_when"}
	if d.Code() != "UPE0003" {
		t.Errorf("Code = %q", d.Code())
	}
	if (Diagnostic{Domain: DomainParser, Key: "missing"}).Code() != "" {
		t.Error("unknown key should have no code")
	}
}

func TestSnippet(t *testing.T) {
	src := "a ~ 1\nb ~ 2\nc ~ 3\nd ~ 4\n"
	got := Snippet(src, 2, 1)
	if len(got) != 3 || got[0].No != 1 || got[2].No != 3 || !got[1].Primary {
		t.Errorf("Snippet = %+v", got)
	}
	if got := Snippet(src, 1, 2); len(got) != 3 || got[0].No != 1 {
		t.Errorf("clamped start: %+v", got)
	}
	if got := Snippet(src, 100, 0); len(got) != 1 || got[0].No != 5 {
		t.Errorf("clamped line: %+v", got)
	}
	if Snippet("", 1, 1) != nil || Snippet(src, 0, 1) != nil {
		t.Error("empty source or line 0 should give nil")
	}
}

func TestRender(t *testing.T) {
	src := "when ready\n        show \"x\"\n"
	d := Diagnostic{Line: 2, Msg: "cannot indent multiple levels at once", Domain: DomainLexer, Key: "multi_level_indent"}
	got := Render(d, "main.uki", src, 1)
	for _, want := range []string{
		"error[ULE0003]: cannot indent multiple levels at once\n",
		" --> main.uki:2\n",
		"  1 | when ready\n",
		"> 2 |         show \"x\"\n",
		"help: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render output missing %q:\n%s", want, got)
		}
	}

	plain := Render(Diagnostic{Msg: "oops"}, "", "", 1)
	if plain != "error: oops\n" {
		t.Errorf("bare render = %q", plain)
	}
}
