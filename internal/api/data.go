// ABOUTME: HTTP handlers for whole-dataset export, import and reset
// ABOUTME: Export streams the bare snapshot JSON; import replaces it wholesale

package api

import (
	"io"
	"net/http"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	text, err := s.store.Export()
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ordem-servico-export.json"`)
	if _, err := io.WriteString(w, text); err != nil {
		s.logger.Error("writing export", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	stats, err := s.store.Import(string(body))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, stats)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.ResetToSeed()
	s.writeData(w, http.StatusOK, map[string]bool{"success": true})
}
