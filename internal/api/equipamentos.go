// ABOUTME: HTTP handlers for equipment CRUD
// ABOUTME: Mirrors the /api/equipamentos routes the UI consumes

package api

import (
	"net/http"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

func (s *Server) handleListEquipamentos(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.writeData(w, http.StatusOK, s.store.ListEquipamentos(search))
}

func (s *Server) handleGetEquipamento(w http.ResponseWriter, r *http.Request) {
	equipamento, err := s.store.GetEquipamento(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, equipamento)
}

func (s *Server) handleCreateEquipamento(w http.ResponseWriter, r *http.Request) {
	var equipamento store.Equipamento
	if !s.decodeBody(w, r, &equipamento) {
		return
	}

	created, err := s.store.CreateEquipamento(equipamento)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEquipamento(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if !s.decodeBody(w, r, &patch) {
		return
	}

	updated, err := s.store.UpdateEquipamento(r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEquipamento(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEquipamento(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]bool{"success": true})
}
