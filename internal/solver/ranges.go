package solver

import (
	"strconv"
	"strings"
)

// Preflop ranges for a 100bb single-raised pot, BTN open 2.5x against a BB
// call, taken from the solver's bundled presets.
const (
	// DefaultRangeIP is the button's opening range.
	DefaultRangeIP = "AA:1.0,A2s:1.0,A2o:0.0,A3s:1.0,A3o:0.016,A4s:1.0,A4o:1.0,A5s:1.0,A5o:1.0,A6s:1.0,A6o:1.0,A7s:1.0,A7o:1.0,A8s:1.0,A8o:1.0,A9s:1.0,A9o:1.0,ATs:1.0,ATo:1.0,AJs:1.0,AJo:1.0,AQs:1.0,AQo:1.0,AKs:1.0,AKo:1.0,22:1.0,32s:0.0,32o:0.0,42s:0.0,42o:0.0,52s:0.0,52o:0.0,62s:0.0,62o:0.0,72s:0.0,72o:0.0,82s:0.0,82o:0.0,92s:0.0,92o:0.0,T2s:0.0,T2o:0.0,J2s:0.0,J2o:0.0,Q2s:0.066,Q2o:0.0,K2s:1.0,K2o:0.0,33:1.0,43s:0.0,43o:0.0,53s:0.0,53o:0.0,63s:0.0,63o:0.0,73s:0.0,73o:0.0,83s:0.0,83o:0.0,93s:0.0,93o:0.0,T3s:0.0,T3o:0.0,J3s:0.0,J3o:0.0,Q3s:1.0,Q3o:0.0,K3s:1.0,K3o:0.0,44:1.0,54s:1.0,54o:0.0,64s:0.0,64o:0.0,74s:0.0,74o:0.0,84s:0.0,84o:0.0,94s:0.0,94o:0.0,T4s:0.0,T4o:0.0,J4s:0.256,J4o:0.0,Q4s:1.0,Q4o:0.0,K4s:1.0,K4o:0.0,55:1.0,65s:1.0,65o:0.0,75s:1.0,75o:0.0,85s:0.09,85o:0.0,95s:0.0,95o:0.0,T5s:0.0,T5o:0.0,J5s:1.0,J5o:0.0,Q5s:1.0,Q5o:0.0,K5s:1.0,K5o:0.0,66:1.0,76s:1.0,76o:0.0,86s:1.0,86o:0.0,96s:1.0,96o:0.0,T6s:1.0,T6o:0.0,J6s:1.0,J6o:0.0,Q6s:1.0,Q6o:0.0,K6s:1.0,K6o:0.0,77:1.0,87s:1.0,87o:0.0,97s:1.0,97o:0.0,T7s:1.0,T7o:0.0,J7s:1.0,J7o:0.0,Q7s:1.0,Q7o:0.0,K7s:1.0,K7o:0.0,88:1.0,98s:1.0,98o:0.486,T8s:1.0,T8o:0.558,J8s:1.0,J8o:0.43,Q8s:1.0,Q8o:0.082,K8s:1.0,K8o:0.7,99:1.0,T9s:1.0,T9o:1.0,J9s:1.0,J9o:1.0,Q9s:1.0,Q9o:1.0,K9s:1.0,K9o:1.0,TT:1.0,JTs:1.0,JTo:1.0,QTs:1.0,QTo:1.0,KTs:1.0,KTo:1.0,JJ:1.0,QJs:1.0,QJo:1.0,KJs:1.0,KJo:1.0,QQ:1.0,KQs:1.0,KQo:1.0,KK:1.0"

	// DefaultRangeOOP is the big blind's calling range.
	DefaultRangeOOP = "AA:0.0,A2s:1.0,A2o:0.0,A3s:0.822,A3o:0.0,A4s:0.282,A4o:0.48,A5s:0.0,A5o:0.93,A6s:0.766,A6o:0.432,A7s:0.412,A7o:0.976,A8s:0.616,A8o:0.928,A9s:0.818,A9o:0.876,ATs:0.13,ATo:0.918,AJs:0.0,AJo:0.526,AQs:0.0,AQo:0.03,AKs:0.0,AKo:0.0,22:1.0,32s:0.278,32o:0.0,42s:0.796,42o:0.0,52s:1.0,52o:0.0,62s:0.0,62o:0.0,72s:0.0,72o:0.0,82s:0.0,82o:0.0,92s:0.0,92o:0.0,T2s:0.0,T2o:0.0,J2s:0.782,J2o:0.0,Q2s:1.0,Q2o:0.0,K2s:1.0,K2o:0.0,33:1.0,43s:1.0,43o:0.0,53s:0.904,53o:0.0,63s:1.0,63o:0.0,73s:0.032,73o:0.0,83s:0.0,83o:0.0,93s:0.0,93o:0.0,T3s:0.23,T3o:0.0,J3s:1.0,J3o:0.0,Q3s:1.0,Q3o:0.0,K3s:1.0,K3o:0.0,44:1.0,54s:0.396,54o:0.0,64s:0.904,64o:0.0,74s:1.0,74o:0.0,84s:0.136,84o:0.0,94s:0.0,94o:0.0,T4s:0.252,T4o:0.0,J4s:0.996,J4o:0.0,Q4s:1.0,Q4o:0.0,K4s:1.0,K4o:0.0,55:0.972,65s:0.456,65o:0.0,75s:0.82,75o:0.0,85s:1.0,85o:0.0,95s:0.22,95o:0.0,T5s:0.622,T5o:0.0,J5s:0.802,J5o:0.0,Q5s:0.98,Q5o:0.0,K5s:0.898,K5o:0.0,66:0.832,76s:0.346,76o:0.224,86s:0.824,86o:0.0,96s:0.924,96o:0.0,T6s:0.758,T6o:0.0,J6s:0.84,J6o:0.0,Q6s:0.932,Q6o:0.0,K6s:0.736,K6o:0.0,77:0.704,87s:0.212,87o:0.382,97s:0.818,97o:0.0,T7s:0.726,T7o:0.0,J7s:0.55,J7o:0.0,Q7s:0.992,Q7o:0.0,K7s:0.856,K7o:0.0,88:0.486,98s:0.338,98o:0.372,T8s:0.248,T8o:0.42,J8s:0.606,J8o:0.038,Q8s:0.766,Q8o:0.0,K8s:0.64,K8o:0.442,99:0.084,T9s:0.0,T9o:0.876,J9s:0.0,J9o:0.89,Q9s:0.068,Q9o:1.0,K9s:0.306,K9o:0.91,TT:0.0,JTs:0.0,JTo:0.776,QTs:0.122,QTo:0.796,KTs:0.026,KTo:0.802,JJ:0.0,QJs:0.06,QJo:0.904,KJs:0.0,KJo:0.696,QQ:0.0,KQs:0.0,KQo:0.474,KK:0.0"
)

// ActivateHand rewrites a "CLASS:weight,..." range so the hero's class is
// always present and every other zero-weight class is pruned. The hero's
// class is forced to 1.0 when its weight is below 0.01. Tokens that are not
// CLASS:weight pairs are kept unchanged.
func ActivateHand(rng, class string) string {
	tokens := strings.Split(rng, ",")
	kept := make([]string, 0, len(tokens))

	for _, token := range tokens {
		parts := strings.Split(token, ":")
		if len(parts) != 2 {
			kept = append(kept, token)
			continue
		}

		weight, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			weight = 0
		}

		if parts[0] == class {
			if weight < 0.01 {
				kept = append(kept, class+":1.0")
			} else {
				kept = append(kept, token)
			}
			continue
		}
		if weight > 0 {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, ",")
}
