package api

import (
	"net/http"

	"github.com/0x5457/book-rec/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate = validator.New()

const errMissingText = "provide 'text' in JSON"

type recommendRequest struct {
	Text    string `json:"text"    validate:"required"`
	K       *int   `json:"k"`
	Explain bool   `json:"explain"`
}

type recommendResponse struct {
	Results    []models.Book `json:"results"`
	Strategy   string        `json:"strategy,omitempty"`
	Genres     []string      `json:"genres,omitempty"`
	TitleMatch *models.Book  `json:"title_match,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMissingText})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMissingText})
		return
	}

	k := s.opts.DefaultK
	if req.K != nil {
		k = *req.K
	}
	if s.opts.MaxK > 0 && k > s.opts.MaxK {
		k = s.opts.MaxK
	}

	res, err := s.engine.Explain(r.Context(), req.Text, k)
	if err != nil {
		s.logger.Error().Err(err).Msg("recommend failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "recommendation failed"})
		return
	}

	resp := recommendResponse{Results: res.Books}
	if req.Explain || r.URL.Query().Get("explain") == "true" {
		resp.Strategy = string(res.Strategy)
		resp.Genres = res.Genres
		resp.TitleMatch = res.TitleMatch
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	books := s.catalog.ByGenre(r.URL.Query().Get("genre"))
	writeJSON(w, http.StatusOK, map[string]any{
		"source": s.catalog.Source(),
		"count":  len(books),
		"books":  books,
	})
}

func (s *Server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"genres": s.catalog.Genres()})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "genres": s.engine.Detect(q)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
