package poker

// ComboClass converts hole cards to the range notation used by solver
// presets (e.g. "AKs", "72o", "TT"). The higher rank always comes first.
func ComboClass(card1, card2 Card) string {
	rank1, rank2 := card1.Rank, card2.Rank
	if rank2 > rank1 {
		rank1, rank2 = rank2, rank1
	}

	if rank1 == rank2 {
		return rank1.String() + rank2.String()
	}
	if card1.Suit == card2.Suit {
		return rank1.String() + rank2.String() + "s"
	}
	return rank1.String() + rank2.String() + "o"
}

// ComboClassOf is ComboClass over a four character hand key. Hands that do
// not parse fall back to "AA".
func ComboClassOf(hand string) string {
	if len(hand) < 4 {
		return "AA"
	}
	c1, ok1 := ParseCard(hand[0:2])
	c2, ok2 := ParseCard(hand[2:4])
	if !ok1 || !ok2 {
		return "AA"
	}
	return ComboClass(c1, c2)
}
