// ABOUTME: Whole-dataset export and import in the bare-snapshot JSON form
// ABOUTME: Import replaces the aggregate wholesale after a structural check

package store

import (
	"encoding/json"
	"fmt"
)

// ImportStats reports how many records an import brought in.
type ImportStats struct {
	Ordens       int `json:"ordens"`
	Clientes     int `json:"clientes"`
	Equipamentos int `json:"equipamentos"`
}

// Export serializes the aggregate to pretty-printed JSON, without the
// persistence envelope. The remote-backup access token is redacted: exports
// are exactly the payload shipped to a third-party host.
func (s *Store) Export() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := deepCopy(s.data)
	if snap.Settings.Gist != nil {
		snap.Settings.Gist.Token = ""
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing export: %w", err)
	}
	return string(raw), nil
}

// Import parses an exported snapshot and replaces the aggregate wholesale.
// The three core collections must be present as arrays; beyond that no
// per-record validation is performed, so snapshots exported by older versions
// of the system remain importable. On any error the aggregate is untouched.
func (s *Store) Import(text string) (ImportStats, error) {
	defer s.notifySubscribers()

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return ImportStats{}, &ValidationError{Message: fmt.Sprintf("Erro ao importar dados: %v", err)}
	}
	for _, key := range []string{"ordens_servico", "clientes", "equipamentos"} {
		raw, ok := probe[key]
		if !ok {
			return ImportStats{}, &ValidationError{Message: "Formato de dados inválido"}
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return ImportStats{}, &ValidationError{Message: "Formato de dados inválido"}
		}
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		return ImportStats{}, &ValidationError{Message: fmt.Sprintf("Erro ao importar dados: %v", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = snap
	s.ensureCounters()
	s.persistLocked()

	return ImportStats{
		Ordens:       len(snap.OrdensServico),
		Clientes:     len(snap.Clientes),
		Equipamentos: len(snap.Equipamentos),
	}, nil
}
