package links

import (
	"regexp"

	"mvdan.cc/xurls/v2"
)

// linkGroup names the subexpression holding the link itself when a pattern
// also has to match boundary context before it.
const linkGroup = "link"

// minPhoneLength is the shortest phone match kept. Shorter digit runs are
// dates, amounts and the like rather than dialable numbers.
const minPhoneLength = 9

// Pattern is how a single category is recognized.
type Pattern struct {
	// Regexp finds candidate matches. If it has a subexpression named
	// "link", only that part of each match is the link.
	Regexp *regexp.Regexp

	// MinLengthFilter drops matches shorter than minPhoneLength.
	MinLengthFilter bool
}

var (
	hashtagPattern = regexp.MustCompile(`(?:^|\s|$)(?P<link>#[\p{L}0-9_]*)`)
	mentionPattern = regexp.MustCompile(`(?:^|\s|$|[.])(?P<link>@[\p{L}0-9_]*)`)

	phonePattern = regexp.MustCompile(
		`(\+[0-9]+[\- .]*)?` + // +<country code>
			`(\([0-9]+\)[\- .]*)?` + // (<area code>)
			`([0-9][0-9\- .]+[0-9])`)

	emailPattern = regexp.MustCompile(
		`[a-zA-Z0-9+._%\-]{1,256}` +
			`@` +
			`[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}` +
			`(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+`)

	urlPattern = xurls.Relaxed()
)

var registry = [...]Pattern{
	Hashtag: {Regexp: hashtagPattern},
	Mention: {Regexp: mentionPattern},
	Phone:   {Regexp: phonePattern, MinLengthFilter: true},
	Email:   {Regexp: emailPattern},
	URL:     {Regexp: urlPattern},
}

// PatternFor returns the pattern used to recognize c. It panics if c is not
// a known category.
func PatternFor(c Category) Pattern {
	c.mustBeValid()
	return registry[c]
}
