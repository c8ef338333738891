package strategy

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is a trimmed solver dump with a flop, one turn and one river.
const fixture = `{
  "actions": ["CHECK", "BET 50"],
  "strategy": {"strategy": {"AhKh": [0.25, 0.75], "QdQc": [1.0, 0.0]}},
  "childrens": {
    "BET 50": {
      "actions": ["CALL", "FOLD"],
      "strategy": {"strategy": {"AhKh": [0.9, 0.1]}}
    },
    "CHECK": {
      "actions": ["CHECK", "BET 33", "BET 66"],
      "strategy": {"strategy": {"KhAh": [0.1, 0.6, 0.3]}},
      "childrens": {
        "BET 66": {
          "actions": ["CALL", "FOLD", "RAISE"],
          "strategy": {"strategy": {"AhKh": [0.2, 0.2, 0.6]}}
        },
        "BET 33": {
          "actions": ["CALL", "FOLD", "RAISE"],
          "strategy": {"strategy": {"AhKh": [0.7, 0.1, 0.2]}}
        },
        "CHECK": {
          "dealcards": {
            "2c": {
              "actions": ["CHECK", "BET 100"],
              "strategy": {"strategy": {"AhKh": [0.5, 0.5]}},
              "childrens": {
                "CHECK": {
                  "actions": ["CHECK", "BET 100"],
                  "strategy": {"strategy": {"AhKh": [0.4, 0.6]}},
                  "childrens": {
                    "CHECK": {
                      "dealcards": {
                        "9s": {
                          "actions": ["CHECK", "BET 200"],
                          "strategy": {"strategy": {"AhKh": [0.05, 0.95]}}
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

func loadFixture(t *testing.T) *Tree {
	t.Helper()
	tree, err := Decode(strings.NewReader(fixture))
	require.NoError(t, err)
	return tree
}

func mustNode(t *testing.T, doc string) Node {
	t.Helper()
	tree, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, tree.Root().Valid())
	return tree.Root()
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "output_result.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	tree, err := Load(path)
	require.NoError(t, err)
	assert.True(t, tree.Root().Valid())

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestNonObjectRootAnswersNothing(t *testing.T) {
	t.Parallel()

	tree, err := Decode(strings.NewReader(`[1, 2, 3]`))
	require.NoError(t, err)

	assert.True(t, tree.Flop("AhKh").Empty())
	assert.Nil(t, tree.FlopStrategy("AhKh"))
	_, ok := tree.Turn("AhKh", "2c")
	assert.False(t, ok)
	assert.Nil(t, tree.Find("AhKh"))
}

func TestHeroStrategyAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		hand    string
		want    *HeroStrategy
		wantNil bool
	}{
		{
			name: "exact key",
			doc:  `{"actions":["CHECK","BET"],"strategy":{"strategy":{"AhKh":[0.25,0.75]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"CHECK", "BET"}, Probs: []float64{0.25, 0.75}},
		},
		{
			name: "swapped key",
			doc:  `{"actions":["CHECK","BET"],"strategy":{"strategy":{"KhAh":[1.0,0.0]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"CHECK", "BET"}, Probs: []float64{1.0, 0.0}},
		},
		{
			name: "exact key wins over swapped",
			doc:  `{"actions":["A"],"strategy":{"strategy":{"AhKh":[0.1],"KhAh":[0.9]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"A"}, Probs: []float64{0.1}},
		},
		{
			name: "more labels than probabilities",
			doc:  `{"actions":["CHECK","BET","ALLIN"],"strategy":{"strategy":{"AhKh":[0.5,0.5]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"CHECK", "BET"}, Probs: []float64{0.5, 0.5}},
		},
		{
			name: "more probabilities than labels",
			doc:  `{"actions":["CHECK"],"strategy":{"strategy":{"AhKh":[0.3,0.7]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"CHECK"}, Probs: []float64{0.3}},
		},
		{
			name: "synthesized labels",
			doc:  `{"strategy":{"strategy":{"AhKh":[0.3,0.7]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"action #0", "action #1"}, Probs: []float64{0.3, 0.7}},
		},
		{
			name: "non-numeric entries dropped",
			doc:  `{"actions":["A","B"],"strategy":{"strategy":{"AhKh":["x",0.4,null,0.6]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"A", "B"}, Probs: []float64{0.4, 0.6}},
		},
		{
			name: "non-string labels dropped",
			doc:  `{"actions":[1,"BET"],"strategy":{"strategy":{"AhKh":[0.4,0.6]}}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"BET"}, Probs: []float64{0.4}},
		},
		{
			name:    "hand missing from table",
			doc:     `{"actions":["A"],"strategy":{"strategy":{"QdQc":[1.0]}}}`,
			hand:    "AhKh",
			wantNil: true,
		},
		{
			name:    "vector is not an array",
			doc:     `{"actions":["A"],"strategy":{"strategy":{"AhKh":0.5}}}`,
			hand:    "AhKh",
			wantNil: true,
		},
		{
			name:    "swap only for four character keys",
			doc:     `{"actions":["A"],"strategy":{"strategy":{"hKhA":[1.0]}}}`,
			hand:    "AhKhx",
			wantNil: true,
		},
		{
			name: "descendant search when node has no table",
			doc: `{"childrens":{
				"b":{"actions":["LATE"],"strategy":{"strategy":{"AhKh":[0.2]}}},
				"a":{"childrens":{"deep":{"actions":["EARLY"],"strategy":{"strategy":{"KhAh":[0.8]}}}}}
			}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"EARLY"}, Probs: []float64{0.8}},
		},
		{
			name: "descendant search skips tables without the hand",
			doc: `{"childrens":{
				"a":{"actions":["X"],"strategy":{"strategy":{"QdQc":[1.0]}},
					"childrens":{"z":{"actions":["FOUND"],"strategy":{"strategy":{"AhKh":[0.6]}}}}}
			}}`,
			hand: "AhKh",
			want: &HeroStrategy{Actions: []string{"FOUND"}, Probs: []float64{0.6}},
		},
		{
			name:    "no search when node has its own table",
			doc:     `{"strategy":{"strategy":{"QdQc":[1.0]}},"childrens":{"a":{"strategy":{"strategy":{"AhKh":[0.6]}}}}}`,
			hand:    "AhKh",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeroStrategyAt(mustNode(t, tt.doc), tt.hand)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(got.Actions), len(got.Probs))
		})
	}
}

func TestEmptyVectorWithoutLabels(t *testing.T) {
	t.Parallel()

	got := HeroStrategyAt(mustNode(t, `{"strategy":{"strategy":{"AhKh":[]}}}`), "AhKh")
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Len())
}

func TestFlop(t *testing.T) {
	t.Parallel()

	tree := loadFixture(t)
	flop := tree.Flop("AhKh")

	require.NotNil(t, flop.OOP)
	assert.Equal(t, []string{"CHECK", "BET 50"}, flop.OOP.Actions)
	assert.Equal(t, []float64{0.25, 0.75}, flop.OOP.Probs)

	require.NotNil(t, flop.IP, "IP table stores the swapped key")
	assert.Equal(t, []float64{0.1, 0.6, 0.3}, flop.IP.Probs)

	require.NotNil(t, flop.OOPVsBet)
	assert.Equal(t, []float64{0.7, 0.1, 0.2}, flop.OOPVsBet.Probs, "first BET child in sorted order")

	assert.Equal(t, flop.IP, tree.FlopStrategy("AhKh"))
}

func TestRepresentativeFallsBackToOOP(t *testing.T) {
	t.Parallel()

	tree := loadFixture(t)
	s := tree.FlopStrategy("QdQc")
	require.NotNil(t, s)
	assert.Equal(t, []float64{1.0, 0.0}, s.Probs)

	assert.Nil(t, StreetStrategies{}.Representative())
}

func TestTurnAndRiver(t *testing.T) {
	t.Parallel()

	tree := loadFixture(t)

	turn, ok := tree.Turn("AhKh", "2c")
	require.True(t, ok)
	require.NotNil(t, turn.OOP)
	assert.Equal(t, []float64{0.5, 0.5}, turn.OOP.Probs)
	require.NotNil(t, turn.IP)
	assert.Equal(t, []float64{0.4, 0.6}, turn.IP.Probs)
	assert.Nil(t, turn.OOPVsBet)

	river, ok := tree.River("AhKh", "2c", "9s")
	require.True(t, ok)
	require.NotNil(t, river.OOP)
	assert.Equal(t, []string{"CHECK", "BET 200"}, river.OOP.Actions)
	assert.Nil(t, river.IP)

	rep := tree.RiverStrategy("AhKh", "2c", "9s")
	require.NotNil(t, rep)
	assert.Equal(t, []float64{0.05, 0.95}, rep.Probs)

	_, ok = tree.Turn("AhKh", "3d")
	assert.False(t, ok, "undealt card")
	assert.Nil(t, tree.TurnStrategy("AhKh", "3d"))

	_, ok = tree.River("AhKh", "2c", "Ts")
	assert.False(t, ok)
	assert.Nil(t, tree.RiverStrategy("AhKh", "3d", "9s"))
}

func TestTurnWithoutCheckChild(t *testing.T) {
	t.Parallel()

	tree, err := Decode(strings.NewReader(`{"childrens":{"BET":{}}}`))
	require.NoError(t, err)

	_, ok := tree.Turn("AhKh", "2c")
	assert.False(t, ok)
	assert.Nil(t, tree.TurnStrategy("AhKh", "2c"))
}

func TestFind(t *testing.T) {
	t.Parallel()

	tree := loadFixture(t)

	found := tree.Find("AhKh")
	require.NotNil(t, found)
	assert.Equal(t, []float64{0.25, 0.75}, found.Probs, "root table holds the hand")

	assert.Equal(t, []float64{1.0, 0.0}, tree.Vector("QdQc"))
	assert.Nil(t, tree.Vector("2s2d"))
}

func TestConcurrentQueries(t *testing.T) {
	t.Parallel()

	tree := loadFixture(t)
	want := tree.RiverStrategy("AhKh", "2c", "9s")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, tree.RiverStrategy("AhKh", "2c", "9s"))
			assert.NotNil(t, tree.FlopStrategy("KhAh"))
		}()
	}
	wg.Wait()
}
