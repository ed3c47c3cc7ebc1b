// ABOUTME: CRUD operations for client records
// ABOUTME: Search, ordered listing, monotonic ids, audit entries, delete guard

package store

import (
	"fmt"
	"sort"
	"strings"
)

// ListClientes returns clients matching the optional search term, ordered by
// nome_fantasia. The search is a case-insensitive substring match over
// nome_fantasia, razao_social and email, and a plain substring match over the
// cpf and cnpj tax ids.
func (s *Store) ListClientes(search string) []Cliente {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := deepCopy(s.data)
	clientes := copied.Clientes

	if search != "" {
		lower := strings.ToLower(search)
		var filtered []Cliente
		for _, c := range clientes {
			if strings.Contains(strings.ToLower(c.NomeFantasia), lower) ||
				strings.Contains(strings.ToLower(c.RazaoSocial), lower) ||
				strings.Contains(strings.ToLower(c.Email), lower) ||
				strings.Contains(c.CPF, search) ||
				strings.Contains(c.CNPJ, search) {
				filtered = append(filtered, c)
			}
		}
		clientes = filtered
	}

	sort.SliceStable(clientes, func(i, j int) bool {
		return ptCollator.CompareString(clientes[i].NomeFantasia, clientes[j].NomeFantasia) < 0
	})
	return clientes
}

// GetCliente returns the client with the given id, or ErrNotFound.
func (s *Store) GetCliente(id string) (Cliente, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range deepCopy(s.data).Clientes {
		if c.ID == id {
			return c, nil
		}
	}
	return Cliente{}, notFoundf("cliente %s", id)
}

// CreateCliente adds a new client. Any id on the input is replaced with a
// newly generated one.
func (s *Store) CreateCliente(c Cliente) (Cliente, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = fmt.Sprintf("cliente-%d", s.nextID(KindCliente))
	s.data.Clientes = append(s.data.Clientes, c)

	s.appendLogLocked(AuditCreate, KindCliente, c.ID, nil, "Cliente criado")
	s.persistLocked()
	return c, nil
}

// UpdateCliente merges the patch into the client and records the field diff.
func (s *Store) UpdateCliente(id string, patch map[string]any) (Cliente, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.Clientes {
		if s.data.Clientes[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Cliente{}, notFoundf("cliente %s", id)
	}

	updated, diff, err := applyPatch(s.data.Clientes[idx], patch)
	if err != nil {
		return Cliente{}, err
	}
	updated.ID = id
	s.data.Clientes[idx] = updated

	s.appendLogLocked(AuditUpdate, KindCliente, id, diff, "Cliente atualizado")
	s.persistLocked()
	return updated, nil
}

// DeleteCliente removes a client. Deletion is refused with a ConflictError
// while any service order still references the client.
func (s *Store) DeleteCliente(id string) error {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.Clientes {
		if s.data.Clientes[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFoundf("cliente %s", id)
	}

	for _, o := range s.data.OrdensServico {
		if o.ClienteID == id {
			return &ConflictError{Message: "Não é possível excluir cliente com ordens de serviço associadas"}
		}
	}

	deleted := s.data.Clientes[idx]
	s.data.Clientes = append(s.data.Clientes[:idx], s.data.Clientes[idx+1:]...)

	s.appendLogLocked(AuditDelete, KindCliente, id, nil,
		fmt.Sprintf("Cliente %s excluído", deleted.NomeFantasia))
	s.persistLocked()
	return nil
}
