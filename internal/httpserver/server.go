// internal/httpserver/server.go
//
// HTTP server wiring for the clue finder.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Automated solve: POST /solve.
//   - Interactive sessions: POST /sessions, GET /sessions/{id},
//     POST /sessions/{id}/feedback, DELETE /sessions/{id}.
//   - Daily puzzle: mounted under /daily.
//
// Notes:
//   - When a JWT secret is configured, every solver route requires an HS256 bearer token.
//   - Scoring honours the request context, so the Timeout middleware bounds each round.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/solver"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/store"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/words"
)

// Options configures the HTTP surface.
type Options struct {
	ClientOrigin   string
	RequestTimeout time.Duration
	JWTSecret      string // empty disables auth
	DailySalt      string
	Now            func() time.Time // defaults to time.Now
}

// Server bundles router, solver, and session store.
type Server struct {
	r      *chi.Mux
	solver *solver.Solver
	store  store.Store
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(sv *solver.Solver, st store.Store, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), solver: sv, store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                          // zerolog access log
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		t := s.solver.Table()
		writeJSON(w, http.StatusOK, map[string]any{
			"service":    "cluefinder",
			"words":      t.Len(),
			"wordLength": t.WordLen(),
			"endpoints":  []string{"/health", "/metrics", "POST /solve", "POST /sessions", "/daily"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.r.Group(func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(s.requireAuth())
		}
		r.Post("/solve", s.handleSolve)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleNewSession)
			r.Get("/{id}", s.handleGetSession)
			r.Post("/{id}/feedback", s.handleFeedback)
			r.Delete("/{id}", s.handleDeleteSession)
		})
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ctxUserKey is the context key type for the authenticated subject.
type ctxUserKey struct{}

// requireAuth enforces a valid HS256 bearer token and stores its subject in the request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	secret := []byte(s.opts.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid || claims.Subject == "" {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------ payloads -----------------------------------

type clueDTO struct {
	Word  string `json:"word"`
	Value int    `json:"value"`
}

func toDTO(c clue.Clue) clueDTO { return clueDTO{Word: c.Word.String(), Value: c.Value} }

func toDTOs(cs []clue.Clue) []clueDTO {
	out := make([]clueDTO, len(cs))
	for i, c := range cs {
		out[i] = toDTO(c)
	}
	return out
}

// ------------------------------- SOLVE -------------------------------------

type solveReq struct {
	Target string `json:"target"`
}
type solveRes struct {
	Target string    `json:"target"`
	Clues  []clueDTO `json:"clues"`
	Rounds int       `json:"rounds"`
}

// handleSolve runs an automated solve against the requested hidden word.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	target := overlap.NewWord(strings.ToLower(strings.TrimSpace(req.Target)))
	clues, err := s.solver.SolveAuto(r.Context(), target)
	switch {
	case errors.Is(err, solver.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "invalid_target")
		return
	case errors.Is(err, clue.ErrNoCandidates):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "no_consistent_word", "clues": toDTOs(clues)})
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, solveRes{Target: target.String(), Clues: toDTOs(clues), Rounds: len(clues)})
}

// ------------------------------ SESSIONS -----------------------------------

type sessionRes struct {
	SessionID string    `json:"sessionId"`
	State     string    `json:"state"` // "searching" | "converged"
	Remaining int       `json:"remaining"`
	Clue      *clueDTO  `json:"clue,omitempty"`
	Answer    []string  `json:"answer,omitempty"`
	History   []clueDTO `json:"history"`
}

type feedbackReq struct {
	WrongPlace *int `json:"wrongPlace"`
	RightPlace *int `json:"rightPlace"`
}

func (s *Server) view(sess *solver.Session) sessionRes {
	res := sessionRes{
		SessionID: sess.ID,
		State:     string(sess.State()),
		Remaining: sess.Remaining(),
		History:   toDTOs(sess.History()),
	}
	if res.State == string(solver.StateConverged) {
		res.Answer = words.Strings(s.solver.Words(sess.Candidates()))
		if res.Answer == nil {
			res.Answer = []string{}
		}
	} else if c, ok := sess.Pending(); ok {
		dto := toDTO(c)
		res.Clue = &dto
	}
	return res
}

// advance picks the next clue (if any) and writes the session view.
func (s *Server) advance(w http.ResponseWriter, r *http.Request, sess *solver.Session, status int) {
	if _, _, err := s.solver.Next(r.Context(), sess); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, status, s.view(sess))
}

// handleNewSession starts an interactive session and returns its first clue.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := s.solver.NewSession(solver.ModeInteractive)
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.internalError(w, r, err)
		return
	}
	sub, _ := r.Context().Value(ctxUserKey{}).(string)
	log.Info().Str("session", sess.ID).Str("user", sub).Msg("session started")
	s.advance(w, r, sess, http.StatusCreated)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFeedback applies the operator's counts to the pending clue and returns the next one.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.WrongPlace == nil || req.RightPlace == nil ||
		*req.WrongPlace < 0 || *req.RightPlace < 0 || *req.WrongPlace > 255 || *req.RightPlace > 255 {
		writeError(w, http.StatusBadRequest, "invalid_feedback")
		return
	}
	obs := overlap.New(uint8(*req.WrongPlace), uint8(*req.RightPlace))

	switch err := s.solver.Apply(sess, obs); {
	case errors.Is(err, solver.ErrInvalidFeedback):
		writeError(w, http.StatusBadRequest, "invalid_feedback")
		return
	case errors.Is(err, solver.ErrConverged), errors.Is(err, solver.ErrNoPendingClue), errors.Is(err, solver.ErrStalled):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}
	s.advance(w, r, sess, http.StatusOK)
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = http.StatusServiceUnavailable
	}
	log.Error().Err(err).Str("requestId", chimw.GetReqID(r.Context())).Msg("request failed")
	writeError(w, status, "internal")
}
