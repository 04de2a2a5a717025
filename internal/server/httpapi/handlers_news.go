package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: article id must be an integer", common.ErrorValidation)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrorValidation, name)
	}
	return n, nil
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	id, _ := auth.FromContext(r.Context())
	a, err := s.articles.Create(r.Context(), id, req.Title, req.Content)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newArticleView(a))
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	list, err := s.articles.List(r.Context(), skip, limit)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	out := make([]articleView, 0, len(list))
	for _, a := range list {
		out = append(out, newArticleView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	a, err := s.articles.Get(r.Context(), articleID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newArticleView(a))
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	var req articleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	id, _ := auth.FromContext(r.Context())
	a, err := s.articles.Update(r.Context(), id, articleID, req.Title, req.Content)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newArticleView(a))
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	id, _ := auth.FromContext(r.Context())
	if err := s.articles.Delete(r.Context(), id, articleID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
