package skills

import "regexp"

// delimiterClass is the set of characters that may surround a keyword.
// Hyphen and dash variants and bullet glyphs are included so that resume
// separators ("Go • Rust", "C/C++", "SQL | NoSQL") still delimit tokens.
// Vertical tab and the byte order mark count as whitespace too.
const delimiterClass = `\s\x0B\x{FEFF}\p{Z},;()\[\]/|•·–—\-`

// sentencePunctuation may end a keyword ("...and PostgreSQL.") but only when
// it is itself followed by a delimiter or the end of the text, so "react.js"
// does not count as "react".
const sentencePunctuation = `.:!?`

// compileBoundaryPattern builds the matcher for a lowercase keyword.
func compileBoundaryPattern(keyword string) (*regexp.Regexp, error) {
	leading := `(?:^|[` + delimiterClass + `])`
	trailing := `(?:$|[` + delimiterClass + `]|[` + regexp.QuoteMeta(sentencePunctuation) + `](?:$|[` + delimiterClass + `]))`
	return regexp.Compile(leading + regexp.QuoteMeta(keyword) + trailing)
}
