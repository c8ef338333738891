// Package summary records each advisor run so sessions can be reviewed
// later.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/pokeradvisor/internal/fileutil"
	"github.com/lox/pokeradvisor/internal/strategy"
)

// Entry is one advisor run: the situation and the representative strategy
// found on each street.
type Entry struct {
	ID    uuid.UUID `json:"id"`
	Time  time.Time `json:"time"`
	Hero  string    `json:"hero"`
	Flop  string    `json:"flop"`
	Turn  string    `json:"turn,omitempty"`
	River string    `json:"river,omitempty"`

	FlopStrategy  *strategy.HeroStrategy `json:"flop_strategy,omitempty"`
	TurnStrategy  *strategy.HeroStrategy `json:"turn_strategy,omitempty"`
	RiverStrategy *strategy.HeroStrategy `json:"river_strategy,omitempty"`
}

// NewEntry stamps a fresh entry with an ID and the clock's current time.
func NewEntry(clock quartz.Clock, hero string, flop []string, turn, river string) Entry {
	return Entry{
		ID:    uuid.New(),
		Time:  clock.Now().UTC(),
		Hero:  hero,
		Flop:  strings.Join(flop, ","),
		Turn:  turn,
		River: river,
	}
}

// Format renders the entry as the plain-text block appended to the summary
// file.
func (e Entry) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== RUN %s ===\n", e.ID)
	fmt.Fprintf(&b, "Time: %s\n", e.Time.Format(time.RFC3339))
	fmt.Fprintf(&b, "Hero: %s\n", e.Hero)
	fmt.Fprintf(&b, "Flop: %s\n", e.Flop)
	if e.Turn != "" {
		fmt.Fprintf(&b, "Turn: %s\n", e.Turn)
	}
	if e.River != "" {
		fmt.Fprintf(&b, "River: %s\n", e.River)
	}
	writeStrategy(&b, "Flop", e.FlopStrategy)
	writeStrategy(&b, "Turn", e.TurnStrategy)
	writeStrategy(&b, "River", e.RiverStrategy)
	b.WriteByte('\n')
	return b.String()
}

func writeStrategy(b *strings.Builder, street string, s *strategy.HeroStrategy) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "%s strategy:\n", street)
	for i, action := range s.Actions {
		fmt.Fprintf(b, "  %s: %.4f\n", action, s.Probs[i])
	}
}

// Sink persists entries.
type Sink interface {
	Append(ctx context.Context, e Entry) error
}

// FileSink appends formatted entries to a text file, creating it and its
// directory on first use.
type FileSink struct {
	Path string
}

// Append writes the entry's text block.
func (s *FileSink) Append(_ context.Context, e Entry) error {
	if err := fileutil.Append(s.Path, []byte(e.Format())); err != nil {
		return fmt.Errorf("append summary: %w", err)
	}
	return nil
}

// Multi fans an entry out to several sinks. Every sink is attempted; the
// errors are joined.
type Multi []Sink

// Append writes to each sink in order.
func (m Multi) Append(ctx context.Context, e Entry) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
