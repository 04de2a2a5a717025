package httpapi

import "net/http"

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.mux.Handle("POST /token", s.limitLogin(http.HandlerFunc(s.handleToken)))
	s.mux.Handle("POST /users/{$}", s.optionalIdentity(http.HandlerFunc(s.handleRegister)))
	s.mux.Handle("GET /users/me/{$}", s.requireIdentity(http.HandlerFunc(s.handleMe)))

	s.mux.Handle("POST /news/{$}", s.requireIdentity(http.HandlerFunc(s.handleCreateArticle)))
	s.mux.HandleFunc("GET /news/{$}", s.handleListArticles)
	s.mux.HandleFunc("GET /news/{id}", s.handleGetArticle)
	s.mux.Handle("PUT /news/{id}", s.requireIdentity(http.HandlerFunc(s.handleUpdateArticle)))
	s.mux.Handle("DELETE /news/{id}", s.requireIdentity(http.HandlerFunc(s.handleDeleteArticle)))
}
