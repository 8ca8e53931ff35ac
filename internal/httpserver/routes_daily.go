// internal/httpserver/routes_daily.go
//
// HTTP route for the daily puzzle.
//   - GET /daily → the clue sequence that solves today's hidden word.
//
// The hidden word is chosen deterministically from the date and a salt, so every
// caller on the same day sees the same sequence. Results are cached per date.

package httpserver

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/daily"
)

// dailyServer wraps dependencies for /daily.
type dailyServer struct {
	srv   *Server
	salt  string
	mu    sync.Mutex          // guards cache
	cache map[string]dailyRes // keyed by date
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date   string    `json:"date"`
	Clues  []clueDTO `json:"clues"`
	Rounds int       `json:"rounds"`
}

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, salt: s.opts.DailySalt, cache: make(map[string]dailyRes)}
	r.Get("/daily", dd.handleDaily)
}

func (d *dailyServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := d.srv.opts.Now().UTC()
	date := daily.DateKey(now)

	d.mu.Lock()
	res, ok := d.cache[date]
	d.mu.Unlock()
	if ok {
		writeJSON(w, http.StatusOK, res)
		return
	}

	t := d.srv.solver.Table()
	idx := daily.WordIndex(now, d.salt, t.Len())
	clues, err := d.srv.solver.SolveAuto(r.Context(), t.Word(idx))
	if err != nil {
		d.srv.internalError(w, r, err)
		return
	}
	res = dailyRes{Date: date, Clues: toDTOs(clues), Rounds: len(clues)}

	d.mu.Lock()
	d.cache[date] = res
	d.mu.Unlock()
	log.Info().Str("date", date).Int("rounds", res.Rounds).Msg("daily solve cached")
	writeJSON(w, http.StatusOK, res)
}
