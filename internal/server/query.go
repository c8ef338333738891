package server

import (
	"errors"
	"strings"

	"github.com/lox/pokeradvisor/internal/strength"
	"github.com/lox/pokeradvisor/poker"
)

var (
	errMissingHero = errors.New("hero hand is required")
	errRiverNoTurn = errors.New("river given without a turn card")
)

type query struct {
	hero  string
	turn  string
	river string
}

func newQuery(req strategyRequest) (query, error) {
	q := query{
		hero:  poker.NormalizeHand(req.Hero),
		turn:  poker.FirstCard(req.Turn),
		river: poker.FirstCard(req.River),
	}
	if q.hero == "" {
		return query{}, errMissingHero
	}
	if q.river != "" && q.turn == "" {
		return query{}, errRiverNoTurn
	}
	return q, nil
}

func joinBoard(board string) string {
	return strings.Join(poker.NormalizeBoard(board), ",")
}

func strengthOf(hero, board string) string {
	return strength.Evaluate(poker.NormalizeHand(hero), joinBoard(board))
}

func exactOf(hero, board string) (string, bool) {
	return strength.ExactFromStrings(poker.NormalizeHand(hero), joinBoard(board))
}
