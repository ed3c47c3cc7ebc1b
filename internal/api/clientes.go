// ABOUTME: HTTP handlers for client CRUD
// ABOUTME: Mirrors the /api/clientes routes the UI consumes

package api

import (
	"net/http"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

func (s *Server) handleListClientes(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.writeData(w, http.StatusOK, s.store.ListClientes(search))
}

func (s *Server) handleGetCliente(w http.ResponseWriter, r *http.Request) {
	cliente, err := s.store.GetCliente(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, cliente)
}

func (s *Server) handleCreateCliente(w http.ResponseWriter, r *http.Request) {
	var cliente store.Cliente
	if !s.decodeBody(w, r, &cliente) {
		return
	}

	created, err := s.store.CreateCliente(cliente)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCliente(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if !s.decodeBody(w, r, &patch) {
		return
	}

	updated, err := s.store.UpdateCliente(r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCliente(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCliente(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]bool{"success": true})
}
