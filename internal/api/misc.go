// ABOUTME: HTTP handlers for the company singleton, attachments, audit log,
// ABOUTME: settings and the dashboard summary

package api

import (
	"encoding/base64"
	"net/http"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

func (s *Server) handleGetEmpresa(w http.ResponseWriter, r *http.Request) {
	empresa, err := s.store.GetEmpresa()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, empresa)
}

func (s *Server) handleSetEmpresa(w http.ResponseWriter, r *http.Request) {
	var empresa store.Empresa
	if !s.decodeBody(w, r, &empresa) {
		return
	}

	saved, err := s.store.SetEmpresa(empresa)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, saved)
}

// anexoUpload is the request shape for attachment uploads. The payload
// travels as base64, matching how attachments are stored.
type anexoUpload struct {
	Filename string           `json:"filename"`
	MIME     string           `json:"mime"`
	Base64   string           `json:"base64"`
	LinkedTo store.AnexoOwner `json:"linked_to"`
}

func (s *Server) handleAddAnexo(w http.ResponseWriter, r *http.Request) {
	var upload anexoUpload
	if !s.decodeBody(w, r, &upload) {
		return
	}

	payload, err := base64.StdEncoding.DecodeString(upload.Base64)
	if err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "Conteúdo do anexo inválido")
		return
	}

	anexo, err := s.store.AddAnexo(upload.Filename, upload.MIME, payload, upload.LinkedTo)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, anexo)
}

func (s *Server) handleGetAnexo(w http.ResponseWriter, r *http.Request) {
	anexo, err := s.store.GetAnexo(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, anexo)
}

func (s *Server) handleDeleteAnexo(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAnexo(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.LogFilter{
		Entity:   store.EntityKind(q.Get("entity")),
		EntityID: q.Get("entity_id"),
	}
	s.writeData(w, http.StatusOK, s.store.ListLogs(filter))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, s.store.GetSettings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings store.Settings
	if !s.decodeBody(w, r, &settings) {
		return
	}

	s.store.UpdateSettings(settings)
	s.writeData(w, http.StatusOK, settings)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, s.store.Stats())
}
