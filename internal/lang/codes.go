// Package lang expands ISO-639 language codes so that 2-letter and 3-letter
// spellings of the same language compare equal during stream selection.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// bibliographic maps ISO-639-2/B codes to their ISO-639-2/T twins. Media
// containers use both spellings interchangeably.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"mao": "mri",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

// Codes expands arbitrary 2/3-letter codes to the full set of ISO-639 codes
// naming the same language. Input order is preserved, expansions are appended,
// duplicates are dropped. All output is lower case.
func Codes(raw []string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	for _, r := range raw {
		code := strings.ToLower(strings.TrimSpace(r))
		if code == "" {
			continue
		}
		add(code)

		canonical := code
		if term, ok := bibliographic[code]; ok {
			add(term)
			canonical = term
		} else {
			for biblio, term := range bibliographic {
				if term == code {
					add(biblio)
				}
			}
		}

		if base, err := language.ParseBase(canonical); err == nil {
			add(strings.ToLower(base.String()))
			add(strings.ToLower(base.ISO3()))
		}
	}

	return out
}

// MatchesPattern reports whether a stream's language code matches a selector
// pattern. A trailing '*' makes the pattern a prefix match against every
// spelling of the stream's language; otherwise the pattern is expanded
// through the equivalence table and compared exactly. Matching is
// case-insensitive.
func MatchesPattern(pattern, streamLanguage string) bool {
	p := strings.ToLower(strings.TrimSpace(pattern))
	lang := strings.ToLower(strings.TrimSpace(streamLanguage))
	if p == "" {
		return false
	}

	if strings.HasSuffix(p, "*") {
		prefix := strings.TrimSuffix(p, "*")
		for _, code := range Codes([]string{lang}) {
			if strings.HasPrefix(code, prefix) {
				return true
			}
		}
		return false
	}

	for _, code := range Codes([]string{p}) {
		if code == lang {
			return true
		}
	}
	return false
}
