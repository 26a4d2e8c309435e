package diag

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed codes.yaml
var codesYAML []byte

// CodeEntry is a single diagnostic code definition.
type CodeEntry struct {
	ID    string `yaml:"id"`    // e.g., "ULE0004"
	Title string `yaml:"title"` // short human title e.g., "tabs not supported for indentation"
	Help  string `yaml:"help"`  // optional default help text
}

// Registry is the top-level catalog format.
type Registry struct {
	Lexer  map[string]CodeEntry `yaml:"lexer"`
	Parser map[string]CodeEntry `yaml:"parser"`
}

// Ref names one catalog entry together with where it lives.
type Ref struct {
	Domain string
	Key    string
	Entry  CodeEntry
}

var (
	regOnce sync.Once
	reg     Registry
	regErr  error
)

func load() error {
	regOnce.Do(func() {
		if len(codesYAML) == 0 {
			return // empty catalog is allowed
		}
		regErr = yaml.Unmarshal(codesYAML, &reg)
	})
	return regErr
}

func section(domain string) map[string]CodeEntry {
	switch domain {
	case DomainLexer:
		return reg.Lexer
	case DomainParser:
		return reg.Parser
	default:
		return nil
	}
}

// Lookup returns a code entry by (domain, key).
func Lookup(domain, key string) (CodeEntry, bool) {
	if err := load(); err != nil {
		return CodeEntry{}, false
	}
	ce, ok := section(domain)[key]
	return ce, ok
}

// Find resolves either a code ID ("ULE0004", case-insensitive) or a bare key
// ("tab_indent") to its catalog entry.
func Find(q string) (Ref, bool) {
	if err := load(); err != nil {
		return Ref{}, false
	}
	q = strings.TrimSpace(q)
	for _, r := range Entries() {
		if strings.EqualFold(r.Entry.ID, q) || r.Key == q {
			return r, true
		}
	}
	return Ref{}, false
}

// Entries lists the catalog sorted by code ID.
func Entries() []Ref {
	if err := load(); err != nil {
		return nil
	}
	var out []Ref
	for _, domain := range []string{DomainLexer, DomainParser} {
		for k, ce := range section(domain) {
			out = append(out, Ref{Domain: domain, Key: k, Entry: ce})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entry.ID < out[j].Entry.ID })
	return out
}

// LoadError reports whether the embedded catalog failed to decode.
func LoadError() error { return load() }
