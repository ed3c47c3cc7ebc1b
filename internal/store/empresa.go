// ABOUTME: Company singleton operations
// ABOUTME: At most one Empresa record exists, with the fixed id empresa-1

package store

// GetEmpresa returns the company record, or ErrNotFound while unset.
func (s *Store) GetEmpresa() (Empresa, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Empresa == nil {
		return Empresa{}, notFoundf("empresa")
	}
	return *deepCopy(s.data).Empresa, nil
}

// SetEmpresa creates the company record on first call and replaces it after,
// logging "create" or "update" accordingly. The id is always EmpresaID.
func (s *Store) SetEmpresa(e Empresa) (Empresa, error) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = EmpresaID
	previous := s.data.Empresa
	s.data.Empresa = &e

	if previous == nil {
		s.appendLogLocked(AuditCreate, KindEmpresa, e.ID, nil, "Dados da empresa criados")
	} else {
		diff := diffFields(*previous, e)
		s.appendLogLocked(AuditUpdate, KindEmpresa, e.ID, diff, "Dados da empresa atualizados")
	}

	s.persistLocked()
	return e, nil
}
