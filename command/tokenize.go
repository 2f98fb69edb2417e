package command

import (
	"strings"

	"github.com/go-andiamo/splitter"
)

var (
	wordSplitter = mustSplitter()
	whitespace   = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")
)

func mustSplitter() splitter.Splitter {
	s, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		panic(err)
	}
	return s
}

// Tokenize splits s on spaces, keeping double-quoted runs together as one token with the
// quotes removed. An unterminated quote is a BadArgument error.
func Tokenize(s string) ([]string, error) {
	s = strings.TrimSpace(whitespace.Replace(s))
	if s == "" {
		return nil, nil
	}

	parts, err := wordSplitter.Split(s)
	if err != nil {
		return nil, &Error{Kind: KindBadArgument, Message: "Unclosed quotation mark.", Err: err}
	}

	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = unquote(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens, nil
}

func unquote(s string) string {
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return s[len(q[0]) : len(s)-len(q[1])]
		}
	}
	return s
}
