// ABOUTME: HTTP handlers for service-order CRUD and the printable document
// ABOUTME: Mirrors the /api/ordens routes the UI consumes

package api

import (
	"net/http"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/printdoc"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

func (s *Server) handleListOrdens(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.OrdemFilter{
		Status:        store.StatusServico(q.Get("status")),
		ClienteID:     q.Get("cliente_id"),
		EquipamentoID: q.Get("equipamento_id"),
		Search:        q.Get("search"),
	}
	s.writeData(w, http.StatusOK, s.store.ListOrdens(filter))
}

func (s *Server) handleGetOrdem(w http.ResponseWriter, r *http.Request) {
	ordem, err := s.store.GetOrdem(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, ordem)
}

func (s *Server) handleCreateOrdem(w http.ResponseWriter, r *http.Request) {
	var ordem store.OrdemServico
	if !s.decodeBody(w, r, &ordem) {
		return
	}

	created, err := s.store.CreateOrdem(ordem)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateOrdem(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if !s.decodeBody(w, r, &patch) {
		return
	}

	updated, err := s.store.UpdateOrdem(r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteOrdem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOrdem(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]bool{"success": true})
}

// handlePrintOrdem assembles the printable document for one service order.
func (s *Server) handlePrintOrdem(w http.ResponseWriter, r *http.Request) {
	ordem, err := s.store.GetOrdem(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	cliente, err := s.store.GetCliente(ordem.ClienteID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	equipamento, err := s.store.GetEquipamento(ordem.EquipamentoID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	empresa, err := s.store.GetEmpresa()
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc := printdoc.Build(ordem, cliente, equipamento, empresa)
	s.writeData(w, http.StatusOK, doc)
}
