package canon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var idReplacer = strings.NewReplacer("-", "_", " ", "_", ".", "_", "/", "_")

// FormatAsID formats text into an identifier, e.g. "Cause-Fall from height" -> "CAUSE_FALL_FROM_HEIGHT".
func FormatAsID(text string) string {
	return idReplacer.Replace(strings.ToUpper(strings.TrimSpace(text)))
}

// FormatString trims whitespace; nil passes through.
func FormatString(text *string) *string {
	if text == nil {
		return nil
	}
	s := strings.TrimSpace(*text)
	return &s
}

// NullableToString is used for NOT NULL columns with no natural default.
func NullableToString(text *string) string {
	if text == nil {
		return ""
	}
	return strings.TrimSpace(*text)
}

// StringToNullable maps empty or whitespace-only text to nil.
func StringToNullable(text *string) *string {
	if IsEmpty(text) {
		return nil
	}
	return FormatString(text)
}

// IsEmpty reports whether text is nil or entirely whitespace.
func IsEmpty(text *string) bool {
	return text == nil || strings.TrimSpace(*text) == ""
}

// FormatAsKeyword capitalises the first letter without lowering the rest, so
// abbreviations survive ("cSPI review" -> "CSPI review").
func FormatAsKeyword(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

var titleCaser = cases.Title(language.English)

// Title title-cases each word of text; nil passes through.
func Title(text *string) *string {
	if text == nil {
		return nil
	}
	s := titleCaser.String(strings.TrimSpace(*text))
	return &s
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
