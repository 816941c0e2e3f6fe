// Package pattern implements the change-grouping engine: hunk extraction,
// canonicalization, structural pairing of markup rewrites, exact-match
// clustering, classification and ranking.
package pattern

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/fwojciec/diffpattern"
	"lukechampine.com/blake3"
)

// Sentinels that replace the whole canonical form when a known attribute
// removal signature is present.
const (
	SentinelAutoIMERemoval     = "POST301FORMAT_AUTOIME_REMOVAL_PATTERN"
	SentinelDefaultFromRemoval = "DEFAULTFROM_EMPTY_REMOVAL_PATTERN"
)

// rewriteRule is one step of markup normalization.
type rewriteRule struct {
	name  string
	apply func(s string) string
}

// replaceRule rewrites every match of expr with repl.
func replaceRule(name, expr, repl string) rewriteRule {
	re := regexp.MustCompile(expr)
	return rewriteRule{
		name: name,
		apply: func(s string) string {
			return re.ReplaceAllLiteralString(s, repl)
		},
	}
}

// signatureRule collapses s to sentinel when every token occurs in it
// (case-insensitive).
func signatureRule(name, sentinel string, tokens ...string) rewriteRule {
	return rewriteRule{
		name: name,
		apply: func(s string) string {
			lower := strings.ToLower(s)
			for _, tok := range tokens {
				if !strings.Contains(lower, tok) {
					return s
				}
			}
			return sentinel
		},
	}
}

// markupRules run in order. Attribute values are stripped before the
// signature checks so those operate on the anonymized string.
var markupRules = []rewriteRule{
	replaceRule("id-value", `(?i)id\s*=\s*"[^"]*"`, `id=""`),
	replaceRule("value-value", `(?i)value\s*=\s*"[^"]*"`, `value=""`),
	replaceRule("name-value", `(?i)name\s*=\s*"[^"]*"`, `name=""`),
	signatureRule("post301format-autoime", SentinelAutoIMERemoval, "post301format", "autoime(nocontrol)"),
	signatureRule("defaultfrom-empty", SentinelDefaultFromRemoval, "defaultfrom", "()"),
	replaceRule("config-block", `(?i)CONFIG\(\{[^}]*\}\)`, `CONFIG({...})`),
	replaceRule("container-sequence", `(?i)<ContainerSequence>\d+</ContainerSequence>`, `<ContainerSequence>N</ContainerSequence>`),
	replaceRule("quoted-number", `"\d+"`, `"N"`),
	replaceRule("device-id", `(?i)<DeviceID>-?\d+</DeviceID>`, `<DeviceID>N</DeviceID>`),
	replaceRule("component-name", `(?i)<Component Name="[^"]*"`, `<Component Name="NAME"`),
}

// Canonicalizer maps hunk text to the string used as the clustering key.
type Canonicalizer struct {
	markupAware bool
}

// NewCanonicalizer returns a Canonicalizer. When markupAware is set the
// markup rewrite rules run after the baseline join.
func NewCanonicalizer(markupAware bool) *Canonicalizer {
	return &Canonicalizer{markupAware: markupAware}
}

// MarkupAware reports whether the markup rewrite rules are active.
func (c *Canonicalizer) MarkupAware() bool {
	return c.markupAware
}

// Canonicalize returns the canonical form of raw hunk text: changed lines
// stripped of marker and whitespace, empties dropped, joined by one space.
func (c *Canonicalizer) Canonicalize(raw string) string {
	joined := strings.Join(diffpattern.ChangedLines(raw), " ")
	if !c.markupAware {
		return joined
	}
	return NormalizeMarkup(joined)
}

// NormalizeMarkup applies the markup rewrite rules to an already joined
// canonical string. It is idempotent.
func NormalizeMarkup(s string) string {
	for _, rule := range markupRules {
		s = rule.apply(s)
	}
	return s
}

// Fingerprint returns the hex blake3 digest of a canonical form.
func Fingerprint(canonical string) string {
	sum := blake3.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
