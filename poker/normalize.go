package poker

import (
	"strings"
	"unicode"
)

// NormalizeCard uppercases the rank and lowercases the suit of a token, so
// "ah" and "AH" both become "Ah". Missing characters become 'X' and 'x'.
func NormalizeCard(token string) string {
	rank, suit := byte('X'), byte('x')
	if len(token) > 0 {
		rank = upper(token[0])
	}
	if len(token) > 1 {
		suit = lower(token[1])
	}
	return string([]byte{rank, suit})
}

// NormalizeBoard splits user input into normalized card tokens. Input that
// contains commas is split on them; otherwise whitespace is removed and the
// string is read two characters at a time. Contiguous input of odd length
// cannot be split and is returned as a single cleaned token.
func NormalizeBoard(raw string) []string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil
	}

	if strings.Contains(t, ",") {
		var cards []string
		for _, part := range strings.Split(t, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			cards = append(cards, NormalizeCard(part))
		}
		return cards
	}

	cleaned := stripSpace(t)
	if len(cleaned)%2 != 0 {
		return []string{cleaned}
	}
	cards := make([]string, 0, len(cleaned)/2)
	for i := 0; i+2 <= len(cleaned); i += 2 {
		cards = append(cards, NormalizeCard(cleaned[i:i+2]))
	}
	return cards
}

// NormalizeHand strips whitespace and commas from a hole-card string and,
// when exactly four characters remain, normalizes both tokens ("ah kd" ->
// "AhKd"). Other lengths are returned cleaned but otherwise untouched.
func NormalizeHand(raw string) string {
	cleaned := strings.ReplaceAll(stripSpace(strings.TrimSpace(raw)), ",", "")
	if len(cleaned) != 4 {
		return cleaned
	}
	return NormalizeCard(cleaned[0:2]) + NormalizeCard(cleaned[2:4])
}

// FirstCard returns the first normalized token of a fragment, or "" when the
// fragment is empty.
func FirstCard(raw string) string {
	cards := NormalizeBoard(raw)
	if len(cards) == 0 {
		return ""
	}
	return cards[0]
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
