// ABOUTME: HTTP handlers for manual remote backup push, pull and test
// ABOUTME: Uses the gist config from the request body or the stored settings

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// writeBackupError surfaces remote-backup failures verbatim: the UI shows the
// message as-is. Incomplete configuration is a 400; transport and remote
// failures are a 502.
func (s *Server) writeBackupError(w http.ResponseWriter, err error) {
	var validation *store.ValidationError
	if errors.As(err, &validation) {
		s.writeErrorMessage(w, http.StatusBadRequest, validation.Message)
		return
	}
	s.writeErrorMessage(w, http.StatusBadGateway, err.Error())
}

// backupConfig resolves the gist configuration for a backup request: the
// request body wins, falling back to the configuration saved in settings.
// The body is read regardless of Content-Length so chunked requests work.
func (s *Server) backupConfig(w http.ResponseWriter, r *http.Request) (store.GistConfig, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return store.GistConfig{}, false
	}

	var cfg store.GistConfig
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &cfg); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
			return store.GistConfig{}, false
		}
	}

	if cfg == (store.GistConfig{}) {
		if saved := s.store.GetSettings().Gist; saved != nil {
			cfg = *saved
		}
	}
	return cfg, true
}

func (s *Server) handleBackupPush(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.backupConfig(w, r)
	if !ok {
		return
	}

	// Snapshot is read here, before the round-trip; mutations made while the
	// push is in flight are not included.
	text, err := s.store.Export()
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.backup.Push(r.Context(), cfg, text); err != nil {
		s.writeBackupError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]string{"message": "Dados enviados para o Gist com sucesso!"})
}

func (s *Server) handleBackupPull(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.backupConfig(w, r)
	if !ok {
		return
	}

	text, err := s.backup.Pull(r.Context(), cfg)
	if err != nil {
		s.writeBackupError(w, err)
		return
	}

	stats, err := s.store.Import(text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, stats)
}

func (s *Server) handleBackupTest(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.backupConfig(w, r)
	if !ok {
		return
	}

	if err := s.backup.TestConnection(r.Context(), cfg); err != nil {
		s.writeBackupError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]string{"message": "Conexão com o Gist estabelecida com sucesso!"})
}
