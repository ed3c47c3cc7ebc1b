// ABOUTME: HTTP/JSON API over the Local Data Store for the browser UI
// ABOUTME: Route registration, response envelope helpers and error mapping

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/gist"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// Server exposes the store over HTTP. Responses use the envelope the UI
// expects: {"data": ...} on success, {"erro": ..., "codigo": ...} on failure.
type Server struct {
	store  *store.Store
	backup *gist.Client
	logger *slog.Logger
}

// New creates an API server around the given store and backup client.
func New(st *store.Store, backup *gist.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  st,
		backup: backup,
		logger: logger.With("component", "api"),
	}
}

// RegisterRoutes attaches all API routes to the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/clientes", s.handleListClientes)
	mux.HandleFunc("POST /api/clientes", s.handleCreateCliente)
	mux.HandleFunc("GET /api/clientes/{id}", s.handleGetCliente)
	mux.HandleFunc("PUT /api/clientes/{id}", s.handleUpdateCliente)
	mux.HandleFunc("DELETE /api/clientes/{id}", s.handleDeleteCliente)

	mux.HandleFunc("GET /api/equipamentos", s.handleListEquipamentos)
	mux.HandleFunc("POST /api/equipamentos", s.handleCreateEquipamento)
	mux.HandleFunc("GET /api/equipamentos/{id}", s.handleGetEquipamento)
	mux.HandleFunc("PUT /api/equipamentos/{id}", s.handleUpdateEquipamento)
	mux.HandleFunc("DELETE /api/equipamentos/{id}", s.handleDeleteEquipamento)

	mux.HandleFunc("GET /api/ordens", s.handleListOrdens)
	mux.HandleFunc("POST /api/ordens", s.handleCreateOrdem)
	mux.HandleFunc("GET /api/ordens/{id}", s.handleGetOrdem)
	mux.HandleFunc("PUT /api/ordens/{id}", s.handleUpdateOrdem)
	mux.HandleFunc("DELETE /api/ordens/{id}", s.handleDeleteOrdem)
	mux.HandleFunc("GET /api/ordens/{id}/imprimir", s.handlePrintOrdem)

	mux.HandleFunc("GET /api/empresa", s.handleGetEmpresa)
	mux.HandleFunc("PUT /api/empresa", s.handleSetEmpresa)

	mux.HandleFunc("POST /api/anexos", s.handleAddAnexo)
	mux.HandleFunc("GET /api/anexos/{id}", s.handleGetAnexo)
	mux.HandleFunc("DELETE /api/anexos/{id}", s.handleDeleteAnexo)

	mux.HandleFunc("GET /api/logs", s.handleListLogs)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("POST /api/reset", s.handleReset)

	mux.HandleFunc("POST /api/backup/push", s.handleBackupPush)
	mux.HandleFunc("POST /api/backup/pull", s.handleBackupPull)
	mux.HandleFunc("POST /api/backup/test", s.handleBackupTest)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dataEnvelope is the success response shape.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorEnvelope is the failure response shape.
type errorEnvelope struct {
	Erro   string `json:"erro"`
	Codigo int    `json:"codigo"`
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: data}); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorEnvelope{Erro: message, Codigo: status}); err != nil {
		s.logger.Error("encoding error response", "error", err)
	}
}

// writeError maps the store's error taxonomy onto HTTP statuses. Unexpected
// errors are logged and surfaced as a generic failure.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var conflict *store.ConflictError
	var validation *store.ValidationError

	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflict):
		s.writeErrorMessage(w, http.StatusConflict, conflict.Message)
	case errors.As(err, &validation):
		s.writeErrorMessage(w, http.StatusBadRequest, validation.Message)
	default:
		s.logger.Error("internal error", "error", err)
		s.writeErrorMessage(w, http.StatusInternalServerError, "Ocorreu um erro. Tente novamente.")
	}
}

// decodeBody parses a JSON request body into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return false
	}
	return true
}
