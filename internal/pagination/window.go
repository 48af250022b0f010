// Package pagination computes the page links shown under a list of results.
package pagination

import "strconv"

const (
	maxVisible = 5
	edgePages  = 3
)

// Token is one slot in a page window: a page number or an elision marker.
type Token struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func (t Token) String() string {
	if t.Ellipsis {
		return "..."
	}
	return strconv.Itoa(t.Page)
}

// Window returns the page tokens to render for current out of last pages.
// A nil result means no pagination control should be rendered at all.
func Window(current, last int) []Token {
	if last <= 1 {
		return nil
	}

	if last <= maxVisible {
		tokens := make([]Token, 0, last)
		for p := 1; p <= last; p++ {
			tokens = append(tokens, page(p))
		}
		return tokens
	}

	switch {
	case current <= edgePages:
		return []Token{page(1), page(2), page(3), page(4), ellipsis(), page(last)}
	case current >= last-2:
		return []Token{page(1), ellipsis(), page(last - 3), page(last - 2), page(last - 1), page(last)}
	default:
		return []Token{page(1), ellipsis(), page(current - 1), page(current), page(current + 1), ellipsis(), page(last)}
	}
}

func page(n int) Token { return Token{Page: n} }

func ellipsis() Token { return Token{Ellipsis: true} }
