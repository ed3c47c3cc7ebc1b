// ABOUTME: CRUD operations for service orders
// ABOUTME: Validates client/equipment references on creation; no delete guard

package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// OrdemFilter narrows ListOrdens results. Zero values match everything.
// Status, ClienteID and EquipamentoID are exact matches; Search is a
// case-insensitive substring match over id, motivo_chamado and constatado.
type OrdemFilter struct {
	Status        StatusServico
	ClienteID     string
	EquipamentoID string
	Search        string
}

// ListOrdens returns service orders matching the filter, newest first by
// order date.
func (s *Store) ListOrdens(filter OrdemFilter) []OrdemServico {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := deepCopy(s.data)
	var ordens []OrdemServico
	lower := strings.ToLower(filter.Search)
	for _, o := range copied.OrdensServico {
		if filter.Status != "" && o.StatusServico != filter.Status {
			continue
		}
		if filter.ClienteID != "" && o.ClienteID != filter.ClienteID {
			continue
		}
		if filter.EquipamentoID != "" && o.EquipamentoID != filter.EquipamentoID {
			continue
		}
		if lower != "" &&
			!strings.Contains(strings.ToLower(o.ID), lower) &&
			!strings.Contains(strings.ToLower(o.MotivoChamado), lower) &&
			!strings.Contains(strings.ToLower(o.Constatado), lower) {
			continue
		}
		ordens = append(ordens, o)
	}

	// ISO-8601 dates order lexicographically
	sort.SliceStable(ordens, func(i, j int) bool {
		return ordens[i].DataOS > ordens[j].DataOS
	})
	return ordens
}

// GetOrdem returns the service order with the given id, or ErrNotFound.
func (s *Store) GetOrdem(id string) (OrdemServico, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range deepCopy(s.data).OrdensServico {
		if o.ID == id {
			return o, nil
		}
	}
	return OrdemServico{}, notFoundf("ordem de serviço %s", id)
}

// CreateOrdem adds a new service order. The referenced client and equipment
// must exist at creation time; the reference is not re-checked afterwards.
func (s *Store) CreateOrdem(o OrdemServico) (OrdemServico, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.clienteExistsLocked(o.ClienteID) {
		return OrdemServico{}, &ValidationError{Message: fmt.Sprintf("Cliente %s não encontrado", o.ClienteID)}
	}
	if !s.equipamentoExistsLocked(o.EquipamentoID) {
		return OrdemServico{}, &ValidationError{Message: fmt.Sprintf("Equipamento %s não encontrado", o.EquipamentoID)}
	}

	o.ID = fmt.Sprintf("OS-%d-%04d", time.Now().Year(), s.nextID(KindOrdemServico))
	if o.Attachments == nil {
		o.Attachments = []string{}
	}
	if o.AuditLog == nil {
		o.AuditLog = []string{}
	}
	s.data.OrdensServico = append(s.data.OrdensServico, o)

	s.appendLogLocked(AuditCreate, KindOrdemServico, o.ID, nil, "Ordem de serviço criada")
	s.persistLocked()

	// re-read so the caller sees the linked audit entry id
	for _, stored := range s.data.OrdensServico {
		if stored.ID == o.ID {
			o = stored
			break
		}
	}
	return deepCopyOrdem(o), nil
}

// UpdateOrdem merges the patch into the order and records the field diff.
func (s *Store) UpdateOrdem(id string, patch map[string]any) (OrdemServico, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.OrdensServico {
		if s.data.OrdensServico[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return OrdemServico{}, notFoundf("ordem de serviço %s", id)
	}

	updated, diff, err := applyPatch(s.data.OrdensServico[idx], patch)
	if err != nil {
		return OrdemServico{}, err
	}
	updated.ID = id
	s.data.OrdensServico[idx] = updated

	s.appendLogLocked(AuditUpdate, KindOrdemServico, id, diff, "Ordem de serviço atualizada")
	s.persistLocked()
	return deepCopyOrdem(s.data.OrdensServico[idx]), nil
}

// DeleteOrdem removes a service order and any attachments linked to it.
func (s *Store) DeleteOrdem(id string) error {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.OrdensServico {
		if s.data.OrdensServico[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFoundf("ordem de serviço %s", id)
	}

	s.data.OrdensServico = append(s.data.OrdensServico[:idx], s.data.OrdensServico[idx+1:]...)

	kept := make([]Anexo, 0, len(s.data.Anexos))
	for _, a := range s.data.Anexos {
		if a.LinkedTo.Entity == KindOrdemServico && a.LinkedTo.ID == id {
			continue
		}
		kept = append(kept, a)
	}
	s.data.Anexos = kept

	s.appendLogLocked(AuditDelete, KindOrdemServico, id, nil,
		fmt.Sprintf("Ordem de serviço %s excluída", id))
	s.persistLocked()
	return nil
}

func (s *Store) clienteExistsLocked(id string) bool {
	for _, c := range s.data.Clientes {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) equipamentoExistsLocked(id string) bool {
	for _, e := range s.data.Equipamentos {
		if e.ID == id {
			return true
		}
	}
	return false
}

func deepCopyOrdem(o OrdemServico) OrdemServico {
	o.Attachments = append([]string{}, o.Attachments...)
	o.AuditLog = append([]string{}, o.AuditLog...)
	return o
}
