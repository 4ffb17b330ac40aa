// Package contact extracts candidate contact details from resume text.
//
// Extraction runs an ordered list of independent line matchers. Each matcher
// writes into a shared accumulator, so a field matched on a later line
// overwrites the value found on an earlier one.
package contact

import (
	"regexp"
	"strings"
)

// Info holds contact details. Empty string means "not found".
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Location  string `json:"location" yaml:"location"`
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	Portfolio string `json:"portfolio" yaml:"portfolio"`
}

// DisplayName returns the name, or fallback when no name was found.
func (i Info) DisplayName(fallback string) string {
	if i.Name != "" {
		return i.Name
	}
	return fallback
}

// Parts returns the non-empty email, phone and location, in that order.
func (i Info) Parts() []string {
	parts := make([]string, 0, 3)
	for _, v := range []string{i.Email, i.Phone, i.Location} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

// ContactLine joins Parts with sep.
func (i Info) ContactLine(sep string) string {
	return strings.Join(i.Parts(), sep)
}

// IsZero reports whether no field is set.
func (i Info) IsZero() bool {
	return i == Info{}
}

// Precompiled patterns.
var (
	headingPrefix = regexp.MustCompile(`^#+\s+`)
	emailToken    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	bareEmailLine = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phoneRun      = regexp.MustCompile(`[\d+\-()\s]*\d[\d+\-()\s]*`)
	afterColon    = regexp.MustCompile(`:\s*(.+)`)
	urlToken      = regexp.MustCompile(`https?://\S+`)
)

// accumulator carries extraction state across lines.
type accumulator struct {
	info     Info
	seenName bool
}

// matcher inspects one line and may update the accumulator.
type matcher struct {
	field string
	apply func(line, lower string, acc *accumulator)
}

// matchers run in order on every line.
var matchers = []matcher{
	{field: "name", apply: matchName},
	{field: "email", apply: matchEmail},
	{field: "phone", apply: matchPhone},
	{field: "location", apply: matchLocation},
	{field: "linkedin", apply: matchURL("linkedin:", func(i *Info, v string) { i.LinkedIn = v })},
	{field: "portfolio", apply: matchURL("portfolio:", func(i *Info, v string) { i.Portfolio = v })},
}

// Extract returns contact details for text.
// A non-nil override is trusted verbatim and no scanning happens.
func Extract(text string, override *Info) Info {
	if override != nil {
		return *override
	}

	acc := &accumulator{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		lower := strings.ToLower(line)
		for _, m := range matchers {
			m.apply(line, lower, acc)
		}
	}
	return acc.info
}

// matchName takes the first markdown heading as the candidate's name.
func matchName(line, _ string, acc *accumulator) {
	if acc.seenName || !headingPrefix.MatchString(line) {
		return
	}
	acc.seenName = true
	acc.info.Name = strings.TrimSpace(headingPrefix.ReplaceAllString(line, ""))
}

// matchEmail reads an email from a labeled line or a line holding only an address.
func matchEmail(line, lower string, acc *accumulator) {
	if strings.Contains(lower, "email:") {
		if m := emailToken.FindString(line); m != "" {
			acc.info.Email = m
		}
		return
	}
	if trimmed := strings.TrimSpace(line); bareEmailLine.MatchString(trimmed) {
		acc.info.Email = trimmed
	}
}

// matchPhone keeps the first digit-bearing run of phone punctuation on a labeled line.
func matchPhone(line, lower string, acc *accumulator) {
	if !strings.Contains(lower, "phone:") {
		return
	}
	if m := phoneRun.FindString(line); m != "" {
		acc.info.Phone = strings.TrimSpace(m)
	}
}

// matchLocation takes the text after the first colon of a labeled line.
func matchLocation(line, lower string, acc *accumulator) {
	if !strings.Contains(lower, "location:") {
		return
	}
	m := afterColon.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if v := strings.TrimSpace(strings.TrimLeft(m[1], "* ")); v != "" {
		acc.info.Location = v
	}
}

// matchURL builds a matcher that reads the first URL on a line carrying label.
func matchURL(label string, set func(*Info, string)) func(string, string, *accumulator) {
	return func(line, lower string, acc *accumulator) {
		if !strings.Contains(lower, label) {
			return
		}
		if m := urlToken.FindString(line); m != "" {
			set(&acc.info, m)
		}
	}
}

// labelMarkers are the bold contact labels of the input dialect.
var labelMarkers = []string{
	"**Email:**",
	"**Phone:**",
	"**Location:**",
	"**LinkedIn:**",
	"**Portfolio:**",
}

// IsLabelLine reports whether line is a contact line of the input dialect:
// a bold contact label or a bare email address.
func IsLabelLine(line string) bool {
	for _, marker := range labelMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return bareEmailLine.MatchString(strings.TrimSpace(line))
}
