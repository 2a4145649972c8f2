package core

import (
	"regexp"
)

// rewriteRule is one textual substitution applied to foreign source.
// Rules are applied in declaration order; later rules see the output of
// earlier ones.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rewriter converts JavaScript source text into Nexus syntax through an
// ordered table of pattern substitutions. This is a heuristic pass; the
// output is not guaranteed to be valid Nexus for arbitrary input.
type Rewriter struct {
	rules []rewriteRule
}

func NewRewriter() Rewriter {
	return Rewriter{rules: []rewriteRule{
		// function declarations
		{regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)\s*{`), `func $1($2) {`},
		// var/let/const all collapse to var
		{regexp.MustCompile(`\b(var|let|const)\s+`), `var `},
		{regexp.MustCompile(`console\.log\s*\(`), `print(`},
		{regexp.MustCompile(`===`), `==`},
		{regexp.MustCompile(`!==`), `!=`},
		{regexp.MustCompile(`&&`), `and`},
		{regexp.MustCompile(`\|\|`), `or`},
		{regexp.MustCompile(`}\s*else\s+if\s*\(`), `} elif (`},
		{regexp.MustCompile(`}\s*else\s*{`), `} else {`},
		// counted for loops become range loops
		{regexp.MustCompile(`for\s*\(\s*var\s+(\w+)\s*=\s*(\d+)\s*;\s*\w+\s*<\s*([^;]+);\s*\w+\+\+\s*\)`), `for $1 in $2..$3 {`},
		// object literals become struct literals
		{regexp.MustCompile(`{\s*([^}]*)\s*}`), `struct {$1}`},
		{regexp.MustCompile(`\breturn\s+`), `return `},
	}}
}

// RewriteSource applies every rule in order to the given source text.
func (r Rewriter) RewriteSource(source string) string {
	out := source
	for _, rule := range r.rules {
		out = rule.pattern.ReplaceAllString(out, rule.replacement)
	}
	return out
}
