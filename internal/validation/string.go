package validation

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Messages are the type-level messages shared by every rule kind.
type Messages struct {
	Required string // field absent
	Invalid  string // field present with the wrong JSON type (including null)
}

type check struct {
	ok  func(string) bool
	msg string
}

// StringRule validates and normalizes a string field. All checks run, so a
// value failing several of them reports every message. Transforms apply only
// when all checks pass.
type StringRule struct {
	msgs       Messages
	trim       bool
	checks     []check
	transforms []func(string) string
}

// String starts a string rule.
func String(m Messages) *StringRule {
	return &StringRule{msgs: m}
}

// Trim strips leading and trailing whitespace before any check runs.
func (r *StringRule) Trim() *StringRule {
	r.trim = true
	return r
}

// Min requires at least n characters.
func (r *StringRule) Min(n int, msg string) *StringRule {
	return r.Tag(fmt.Sprintf("min=%d", n), msg)
}

// Max allows at most n characters.
func (r *StringRule) Max(n int, msg string) *StringRule {
	return r.Tag(fmt.Sprintf("max=%d", n), msg)
}

// MaxBytes allows at most n bytes of UTF-8.
func (r *StringRule) MaxBytes(n int, msg string) *StringRule {
	tag := fmt.Sprintf("max=%d", n)
	return r.Refine(func(s string) bool { return Satisfies([]byte(s), tag) }, msg)
}

// Tag requires s to satisfy a validator tag such as "email" or "max=254".
func (r *StringRule) Tag(tag, msg string) *StringRule {
	return r.Refine(func(s string) bool { return Satisfies(s, tag) }, msg)
}

// Match requires re to match. Patterns are expected to be anchored.
func (r *StringRule) Match(re *regexp.Regexp, msg string) *StringRule {
	return r.Refine(re.MatchString, msg)
}

// Email requires a syntactically valid address.
func (r *StringRule) Email(msg string) *StringRule {
	return r.Refine(IsEmail, msg)
}

// URL requires an absolute URL.
func (r *StringRule) URL(msg string) *StringRule {
	return r.Refine(IsAbsoluteURL, msg)
}

// Refine adds an arbitrary predicate.
func (r *StringRule) Refine(ok func(string) bool, msg string) *StringRule {
	r.checks = append(r.checks, check{ok: ok, msg: msg})
	return r
}

// CollapseSpaces replaces every internal whitespace run with one space.
func (r *StringRule) CollapseSpaces() *StringRule {
	r.transforms = append(r.transforms, func(s string) string {
		return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
	})
	return r
}

// Lowercase folds the accepted value to lower case.
func (r *StringRule) Lowercase() *StringRule {
	r.transforms = append(r.transforms, strings.ToLower)
	return r
}

// Parse validates raw. present reports whether the key existed at all.
func (r *StringRule) Parse(raw any, present bool) (string, []string) {
	if !present {
		return "", []string{r.msgs.Required}
	}
	s, ok := raw.(string)
	if !ok {
		return "", []string{r.msgs.Invalid}
	}
	if r.trim {
		s = strings.TrimSpace(s)
	}
	var failed []string
	for _, c := range r.checks {
		if !c.ok(s) {
			failed = append(failed, c.msg)
		}
	}
	if len(failed) > 0 {
		return "", failed
	}
	for _, t := range r.transforms {
		s = t(s)
	}
	return s, nil
}

// validate backs the field predicates. Var caches parsed tags per instance.
var validate = validator.New()

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {}, ".avif": {},
}

// Satisfies reports whether v passes the validator tag. Strings count
// characters for min/max, byte slices count bytes.
func Satisfies(v any, tag string) bool {
	return validate.Var(v, tag) == nil
}

// IsEmail reports whether s is an RFC 5322 address whose domain ends in an
// alphabetic TLD of at least two letters.
func IsEmail(s string) bool {
	if !Satisfies(s, "email") {
		return false
	}
	domain := s[strings.LastIndexByte(s, '@')+1:]
	return Satisfies(domain[strings.LastIndexByte(domain, '.')+1:], "alpha,min=2")
}

// IsAbsoluteURL reports whether s parses as a URL with a scheme and a host.
func IsAbsoluteURL(s string) bool {
	return Satisfies(s, "url")
}

// HasHTTPScheme reports whether s is an http or https URL.
func HasHTTPScheme(s string) bool {
	return Satisfies(s, "http_url")
}

// HasImageExtension reports whether the URL path of s ends with a known image
// extension, ignoring case. Query and fragment are not part of the path.
func HasImageExtension(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	_, ok := imageExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}

// CountDigits returns the number of ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// HasNoSpace reports whether s has no whitespace at all.
func HasNoSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

// ContainsAny returns a predicate matching strings with at least one rune
// satisfying pred.
func ContainsAny(pred func(rune) bool) func(string) bool {
	return func(s string) bool { return strings.IndexFunc(s, pred) >= 0 }
}
