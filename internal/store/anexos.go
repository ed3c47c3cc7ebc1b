// ABOUTME: Attachment storage, embedded in the aggregate as base64
// ABOUTME: Attachments belong to one owning entity and are not audited

package store

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// AddAnexo stores an uploaded file linked to an owning entity. The owner must
// exist at upload time.
func (s *Store) AddAnexo(filename, mime string, payload []byte, owner AnexoOwner) (Anexo, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ownerExistsLocked(owner) {
		return Anexo{}, &ValidationError{Message: "Registro vinculado não encontrado"}
	}

	anexo := Anexo{
		ID:         "anexo-" + uuid.New().String(),
		Filename:   filename,
		MIME:       mime,
		Base64:     base64.StdEncoding.EncodeToString(payload),
		Size:       int64(len(payload)),
		UploadedAt: time.Now().UTC(),
		LinkedTo:   owner,
	}
	s.data.Anexos = append(s.data.Anexos, anexo)

	if owner.Entity == KindOrdemServico {
		for i := range s.data.OrdensServico {
			if s.data.OrdensServico[i].ID == owner.ID {
				s.data.OrdensServico[i].Attachments = append(s.data.OrdensServico[i].Attachments, anexo.ID)
				break
			}
		}
	}

	s.persistLocked()
	return anexo, nil
}

// GetAnexo returns the attachment with the given id, or ErrNotFound.
func (s *Store) GetAnexo(id string) (Anexo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.data.Anexos {
		if a.ID == id {
			return a, nil
		}
	}
	return Anexo{}, notFoundf("anexo %s", id)
}

// ListAnexos returns the attachments linked to the given owner, in upload order.
func (s *Store) ListAnexos(owner AnexoOwner) []Anexo {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Anexo
	for _, a := range s.data.Anexos {
		if a.LinkedTo == owner {
			out = append(out, a)
		}
	}
	return out
}

// DeleteAnexo removes an attachment and unlinks it from its owning order.
func (s *Store) DeleteAnexo(id string) error {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.Anexos {
		if s.data.Anexos[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFoundf("anexo %s", id)
	}

	owner := s.data.Anexos[idx].LinkedTo
	s.data.Anexos = append(s.data.Anexos[:idx], s.data.Anexos[idx+1:]...)

	if owner.Entity == KindOrdemServico {
		for i := range s.data.OrdensServico {
			if s.data.OrdensServico[i].ID != owner.ID {
				continue
			}
			refs := s.data.OrdensServico[i].Attachments
			for j, ref := range refs {
				if ref == id {
					s.data.OrdensServico[i].Attachments = append(refs[:j], refs[j+1:]...)
					break
				}
			}
			break
		}
	}

	s.persistLocked()
	return nil
}

func (s *Store) ownerExistsLocked(owner AnexoOwner) bool {
	switch owner.Entity {
	case KindOrdemServico:
		for _, o := range s.data.OrdensServico {
			if o.ID == owner.ID {
				return true
			}
		}
	case KindCliente:
		return s.clienteExistsLocked(owner.ID)
	case KindEquipamento:
		return s.equipamentoExistsLocked(owner.ID)
	}
	return false
}
