// ABOUTME: Aggregated counts for the dashboard
// ABOUTME: Order totals per status plus the most recent orders

package store

import "sort"

// DashboardStats summarizes the dataset for the dashboard view.
type DashboardStats struct {
	TotalOrdens       int            `json:"total_ordens"`
	OrdensAbertas     int            `json:"ordens_abertas"`
	OrdensEmAndamento int            `json:"ordens_em_andamento"`
	OrdensConcluidas  int            `json:"ordens_concluidas"`
	TotalClientes     int            `json:"total_clientes"`
	TotalEquipamentos int            `json:"total_equipamentos"`
	OrdensRecentes    []OrdemServico `json:"ordens_recentes"`
}

// Stats computes dashboard totals. OrdensRecentes holds at most the five
// newest orders by order date.
func (s *Store) Stats() DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := deepCopy(s.data)
	stats := DashboardStats{
		TotalOrdens:       len(copied.OrdensServico),
		TotalClientes:     len(copied.Clientes),
		TotalEquipamentos: len(copied.Equipamentos),
	}

	for _, o := range copied.OrdensServico {
		switch o.StatusServico {
		case StatusAberto:
			stats.OrdensAbertas++
		case StatusEmAndamento:
			stats.OrdensEmAndamento++
		case StatusConcluido:
			stats.OrdensConcluidas++
		}
	}

	recent := copied.OrdensServico
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].DataOS > recent[j].DataOS
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.OrdensRecentes = recent
	return stats
}
