// Package server implements the surfrank HTTP API.
//
// The API mirrors the original web application's surface: a session
// cookie identifies each caller's graph, and four endpoints cover the
// lifecycle:
//
//	POST /api/graph      create/replace the session's graph
//	GET  /api/pagerank   compute and return PageRank scores
//	GET  /api/visualize  render the graph scaled by its scores
//	POST /api/clear      drop the session
//
// Unknown-label edges are silently dropped (the engine's contract);
// zero-node graphs are rejected with EMPTY_GRAPH before the solver runs.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/surfrank/surfrank/pkg/errors"
	"github.com/surfrank/surfrank/pkg/graphio"
	"github.com/surfrank/surfrank/pkg/rank"
	"github.com/surfrank/surfrank/pkg/render"
	"github.com/surfrank/surfrank/pkg/session"
)

// sessionCookie is the cookie carrying the session ID.
const sessionCookie = "session_id"

// Server handles the HTTP API backed by a session store.
type Server struct {
	store  session.Store
	ttl    time.Duration
	logger *log.Logger
	router chi.Router
}

// New creates a Server with the given session backend and TTL.
func New(store session.Store, ttl time.Duration, logger *log.Logger) *Server {
	s := &Server{store: store, ttl: ttl, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/graph", s.handleCreateGraph)
		r.Get("/pagerank", s.handlePageRank)
		r.Get("/visualize", s.handleVisualize)
		r.Post("/clear", s.handleClear)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// =============================================================================
// Handlers
// =============================================================================

// createGraphRequest is the POST /api/graph body. Pointer fields
// distinguish absent keys from empty lists, matching the original API's
// "nodes and edges are required" check.
type createGraphRequest struct {
	Nodes *[]string   `json:"nodes"`
	Edges *[][]string `json:"edges"`
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req createGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nodes == nil || req.Edges == nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "invalid input data"))
		return
	}

	doc := graphio.Document{}
	for _, label := range *req.Nodes {
		if err := apperrors.ValidateLabel(label); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		doc.Nodes = append(doc.Nodes, graphio.Node{ID: label})
	}
	for _, edge := range *req.Edges {
		if len(edge) != 2 {
			s.writeError(w, http.StatusBadRequest,
				apperrors.New(apperrors.ErrCodeInvalidEdge, "each edge must have exactly two nodes"))
			return
		}
		doc.Edges = append(doc.Edges, graphio.Edge{From: edge[0], To: edge[1]})
	}

	// Collapse duplicates and drop unknown-label edges up front so the
	// stored document reflects what the engine will actually rank.
	g, stats := graphio.ToGraph(doc)
	if stats.DroppedEdges > 0 {
		s.logger.Warnf("dropped %d edges referencing unknown labels", stats.DroppedEdges)
	}

	sess := session.New(graphio.FromGraph(g), s.ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "store session"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "graph created successfully",
		"num_nodes": g.NodeCount(),
		"num_edges": g.EdgeCount(),
	})
}

func (s *Server) handlePageRank(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	g, _ := graphio.ToGraph(sess.Graph)
	if g.NodeCount() == 0 {
		s.writeError(w, http.StatusUnprocessableEntity,
			apperrors.New(apperrors.ErrCodeEmptyGraph, "graph has no nodes"))
		return
	}

	res, err := rank.Compute(r.Context(), g, rank.DefaultOptions())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "compute pagerank"))
		return
	}
	if !res.Converged {
		s.logger.Warnf("pagerank did not converge within %d iterations", res.Iterations)
	}

	sess.Result = session.ResultFrom(res)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "store result"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"scores":              sess.Result.Scores,
		"iterations":          sess.Result.Iterations,
		"convergence_history": sess.Result.History,
	})
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if sess.Result == nil {
		s.writeError(w, http.StatusConflict,
			apperrors.New(apperrors.ErrCodeNoResult, "compute pagerank before visualizing"))
		return
	}

	g, _ := graphio.ToGraph(sess.Graph)
	dot := render.ToDOT(g, sess.Result.Scores, render.Options{Title: "PageRank"})

	if r.URL.Query().Get("format") == "svg" {
		svg, err := render.SVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError,
				apperrors.Wrap(apperrors.ErrCodeInternal, err, "render svg"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
		return
	}

	png, err := render.PNG(r.Context(), dot)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "render png"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "delete session"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"message": "graph cleared successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// =============================================================================
// Helpers
// =============================================================================

// session resolves the caller's session from the cookie. On failure it
// writes a SESSION_NOT_FOUND response and returns ok == false.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeSessionNotFound, "no graph found for this session"))
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), cookie.Value)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "load session"))
		return nil, false
	}
	if sess == nil {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeSessionNotFound, "no graph found for this session"))
		return nil, false
	}
	return sess, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Errorf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]any{
		"error": apperrors.UserMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}

// logRequests logs method, path, status and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
