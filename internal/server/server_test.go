package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokeradvisor/internal/strategy"
	"github.com/lox/pokeradvisor/internal/summary"
)

const treeJSON = `{
  "actions": ["CHECK", "BET 50"],
  "strategy": {"strategy": {"AhKh": [0.25, 0.75]}},
  "childrens": {
    "CHECK": {
      "actions": ["CHECK", "BET 33"],
      "strategy": {"strategy": {"KhAh": [0.4, 0.6]}},
      "childrens": {
        "BET 33": {
          "actions": ["CALL", "FOLD"],
          "strategy": {"strategy": {"AhKh": [0.8, 0.2]}}
        },
        "CHECK": {
          "dealcards": {
            "2c": {
              "actions": ["CHECK", "BET 100"],
              "strategy": {"strategy": {"AhKh": [0.5, 0.5]}}
            }
          }
        }
      }
    }
  }
}`

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	tree, err := strategy.Decode(strings.NewReader(treeJSON))
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer("127.0.0.1:0", tree, testLogger(), opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := post(t, srv, "/v1/evaluate", `{"hero":"ah ad","board":"ac kd 2s"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got evaluateResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Three of a Kind (Strength: 69/100)", got.Strength)
	assert.NotEmpty(t, got.Exact)
}

func TestEvaluateWithoutExactFive(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := post(t, srv, "/v1/evaluate", `{"hero":"AhKh","board":"Qs,Jh"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Contains(t, got, "strength")
	assert.NotContains(t, got, "exact", "four cards have no best five")
}

func TestStrategy(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := post(t, srv, "/v1/strategy", `{"hero":"ahkh","turn":"2c","river":"9s"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got strategyResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "AhKh", got.Hero)
	require.Len(t, got.Streets, 3)

	flop := got.Streets[0]
	assert.True(t, flop.Found)
	require.NotNil(t, flop.Strategies.OOP)
	assert.Equal(t, []float64{0.25, 0.75}, flop.Strategies.OOP.Probs)
	require.NotNil(t, flop.Strategies.IP)
	assert.Equal(t, []string{"CHECK", "BET 33"}, flop.Strategies.IP.Actions)
	require.NotNil(t, flop.Strategies.OOPVsBet)
	assert.Equal(t, []float64{0.8, 0.2}, flop.Strategies.OOPVsBet.Probs)

	turn := got.Streets[1]
	assert.True(t, turn.Found)
	require.NotNil(t, turn.Strategies.OOP)
	assert.Equal(t, []float64{0.5, 0.5}, turn.Strategies.OOP.Probs)

	river := got.Streets[2]
	assert.False(t, river.Found, "fixture stops at the turn")
}

func TestStrategyBadRequests(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed json", body: `{"hero":`, want: "invalid request body"},
		{name: "unknown field", body: `{"hero":"AhKh","flop":"x"}`, want: "invalid request body"},
		{name: "missing hero", body: `{"turn":"2c"}`, want: "hero hand is required"},
		{name: "river without turn", body: `{"hero":"AhKh","river":"9s"}`, want: "without a turn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv, "/v1/strategy", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestReport(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, body := post(t, srv, "/v1/report", `{"hero":"AhKh","board":"Qs Jh 2h 2c"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Class   string `json:"class"`
		Streets []struct {
			Street string `json:"street"`
			Found  bool   `json:"found"`
		} `json:"streets"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "AKs", got.Class)
	require.Len(t, got.Streets, 2)
	assert.Equal(t, "TURN", got.Streets[1].Street)
	assert.True(t, got.Streets[1].Found)

	resp, body = post(t, srv, "/v1/report", `{"hero":"AhKh","board":"QsJh"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "board needs 3, 4 or 5 cards")
}

type fakeHistory struct {
	entries []summary.Entry
	err     error
	limit   int
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]summary.Entry, error) {
	f.limit = limit
	return f.entries, f.err
}

func TestRuns(t *testing.T) {
	t.Parallel()

	t.Run("not configured", func(t *testing.T) {
		srv := newTestServer(t)
		resp, err := http.Get(srv.URL + "/v1/runs")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("lists entries", func(t *testing.T) {
		h := &fakeHistory{entries: []summary.Entry{{
			ID:   uuid.MustParse("7f1e5c7a-3b2d-4c4e-9a55-0d6f4f1d2b10"),
			Time: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
			Hero: "AhKh",
			Flop: "Qs,Jh,2h",
		}}}
		srv := newTestServer(t, WithHistory(h))

		resp, err := http.Get(srv.URL + "/v1/runs?limit=5")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []summary.Entry
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "AhKh", got[0].Hero)
		assert.Equal(t, 5, h.limit)
	})

	t.Run("limit is capped", func(t *testing.T) {
		h := &fakeHistory{}
		srv := newTestServer(t, WithHistory(h))

		resp, err := http.Get(srv.URL + "/v1/runs?limit=100000")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "[]\n", string(body))
		assert.Equal(t, maxRuns, h.limit)
	})

	t.Run("bad limit", func(t *testing.T) {
		srv := newTestServer(t, WithHistory(&fakeHistory{}))
		resp, err := http.Get(srv.URL + "/v1/runs?limit=zero")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("history failure", func(t *testing.T) {
		srv := newTestServer(t, WithHistory(&fakeHistory{err: errors.New("db down")}))
		resp, err := http.Get(srv.URL + "/v1/runs")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(body), "db down")
	})
}

func TestStartStopsOnCancel(t *testing.T) {
	t.Parallel()
	tree, err := strategy.Decode(strings.NewReader(treeJSON))
	require.NoError(t, err)

	s := NewServer("127.0.0.1:0", tree, testLogger(), WithReadTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
