package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"sportspulse/internal/domain"
)

const maxBodyBytes = 1 << 20

type articleResponse struct {
	domain.Article
	PublishedAgo string `json:"published_ago"`
}

func toArticleResponse(a domain.Article) articleResponse {
	return articleResponse{Article: a, PublishedAgo: humanize.Time(a.Date)}
}

type createArticleRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Author   string `json:"author"`
	Featured bool   `json:"featured"`
}

type darkModeRequest struct {
	DarkMode *bool `json:"dark_mode"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	clients := 0
	if s.deps.Hub != nil {
		clients = s.deps.Hub.ClientCount()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"time":    time.Now().Unix(),
		"clients": clients,
	})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"matches": s.deps.Matches.All()})
}

func (s *Server) handleLiveMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"matches": s.deps.Matches.Live()})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.deps.Matches.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	var patch domain.MatchPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	match, err := s.deps.LiveScores.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleSimulateMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.deps.LiveScores.Simulate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// handleListNews supports ?featured=true and ?category=; both may be combined.
func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := query.Get("category")

	var articles []domain.Article
	switch {
	case query.Get("featured") == "true":
		articles = s.deps.Articles.Featured()
		if category != "" {
			articles = lo.Filter(articles, func(a domain.Article, _ int) bool {
				return a.Category == category
			})
		}
	case category != "":
		articles = s.deps.Articles.ByCategory(category)
	default:
		articles = s.deps.Articles.All()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"articles": lo.Map(articles, func(a domain.Article, _ int) articleResponse {
			return toArticleResponse(a)
		}),
	})
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid article id"))
		return
	}

	article, err := s.deps.Articles.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

func (s *Server) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	stored, err := s.deps.News.Add(r.Context(), domain.Article{
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
		Author:   req.Author,
		Featured: req.Featured,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toArticleResponse(stored))
}

func (s *Server) handleGetDarkMode(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["client_id"]

	enabled, err := s.deps.Preferences.DarkMode(r.Context(), clientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "dark_mode": enabled})
}

func (s *Server) handleToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["client_id"]

	enabled, err := s.deps.Preferences.ToggleDarkMode(r.Context(), clientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "dark_mode": enabled})
}

func (s *Server) handleSetDarkMode(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["client_id"]

	var req darkModeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if req.DarkMode == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("dark_mode is required"))
		return
	}

	if err := s.deps.Preferences.SetDarkMode(r.Context(), clientID, *req.DarkMode); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "dark_mode": *req.DarkMode})
}

func (s *Server) handleListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := s.deps.Newsletter.Subscribers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subscribers": subs, "count": len(subs)})
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	created, err := s.deps.Newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{"subscribed": true, "created": created})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.deps.Hub == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("live updates unavailable"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	s.deps.Hub.serve(conn)
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMatchNotFound), errors.Is(err, domain.ErrArticleNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, domain.ErrMatchNotLive):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, domain.ErrInvalidPatch),
		errors.Is(err, domain.ErrInvalidArticle),
		errors.Is(err, domain.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
