// ABOUTME: CRUD operations for equipment records
// ABOUTME: Same contract as clients: search, name ordering, audit, delete guard

package store

import (
	"fmt"
	"sort"
	"strings"
)

// ListEquipamentos returns equipment matching the optional search term,
// ordered by nome. The search matches nome, marca, modelo and serial number,
// case-insensitively.
func (s *Store) ListEquipamentos(search string) []Equipamento {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := deepCopy(s.data)
	equipamentos := copied.Equipamentos

	if search != "" {
		lower := strings.ToLower(search)
		var filtered []Equipamento
		for _, e := range equipamentos {
			if strings.Contains(strings.ToLower(e.Nome), lower) ||
				strings.Contains(strings.ToLower(e.Marca), lower) ||
				strings.Contains(strings.ToLower(e.Modelo), lower) ||
				strings.Contains(strings.ToLower(e.SN), lower) {
				filtered = append(filtered, e)
			}
		}
		equipamentos = filtered
	}

	sort.SliceStable(equipamentos, func(i, j int) bool {
		return ptCollator.CompareString(equipamentos[i].Nome, equipamentos[j].Nome) < 0
	})
	return equipamentos
}

// GetEquipamento returns the equipment with the given id, or ErrNotFound.
func (s *Store) GetEquipamento(id string) (Equipamento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range deepCopy(s.data).Equipamentos {
		if e.ID == id {
			return e, nil
		}
	}
	return Equipamento{}, notFoundf("equipamento %s", id)
}

// CreateEquipamento adds a new equipment record with a generated id.
func (s *Store) CreateEquipamento(e Equipamento) (Equipamento, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = fmt.Sprintf("equipamento-%d", s.nextID(KindEquipamento))
	s.data.Equipamentos = append(s.data.Equipamentos, e)

	s.appendLogLocked(AuditCreate, KindEquipamento, e.ID, nil, "Equipamento criado")
	s.persistLocked()
	return e, nil
}

// UpdateEquipamento merges the patch into the record and records the diff.
func (s *Store) UpdateEquipamento(id string, patch map[string]any) (Equipamento, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.Equipamentos {
		if s.data.Equipamentos[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Equipamento{}, notFoundf("equipamento %s", id)
	}

	updated, diff, err := applyPatch(s.data.Equipamentos[idx], patch)
	if err != nil {
		return Equipamento{}, err
	}
	updated.ID = id
	s.data.Equipamentos[idx] = updated

	s.appendLogLocked(AuditUpdate, KindEquipamento, id, diff, "Equipamento atualizado")
	s.persistLocked()
	return updated, nil
}

// DeleteEquipamento removes an equipment record unless a service order still
// references it.
func (s *Store) DeleteEquipamento(id string) error {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.Equipamentos {
		if s.data.Equipamentos[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFoundf("equipamento %s", id)
	}

	for _, o := range s.data.OrdensServico {
		if o.EquipamentoID == id {
			return &ConflictError{Message: "Não é possível excluir equipamento com ordens de serviço associadas"}
		}
	}

	deleted := s.data.Equipamentos[idx]
	s.data.Equipamentos = append(s.data.Equipamentos[:idx], s.data.Equipamentos[idx+1:]...)

	s.appendLogLocked(AuditDelete, KindEquipamento, id, nil,
		fmt.Sprintf("Equipamento %s excluído", deleted.Nome))
	s.persistLocked()
	return nil
}
