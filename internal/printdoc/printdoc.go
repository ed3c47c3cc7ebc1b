// ABOUTME: Assembles the printable service-order document
// ABOUTME: Pure data transform; the UI renders the returned structure

package printdoc

import (
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// Documento is the print-ready view of one service order: company header,
// client and equipment blocks, the service narrative, the cost breakdown and
// the signature footer.
type Documento struct {
	Header      Header            `json:"header"`
	Cliente     store.Cliente     `json:"cliente"`
	Equipamento store.Equipamento `json:"equipamento"`
	Servico     Servico           `json:"servico"`
	Custos      Custos            `json:"custos"`
	Rodape      Rodape            `json:"rodape"`
}

// Header identifies the issuing company and the order.
type Header struct {
	Empresa     store.Empresa `json:"empresa"`
	NumeroOrdem string        `json:"numero_ordem"`
	Data        string        `json:"data"`
}

// Servico is the narrative block of the document.
type Servico struct {
	TipoOrdem     store.TipoOrdem     `json:"tipo_ordem"`
	MotivoChamado string              `json:"motivo_chamado"`
	Constatado    string              `json:"constatado"`
	ServExecutado string              `json:"serv_executado"`
	Status        store.StatusServico `json:"status"`
	Observacao    string              `json:"observacao"`
}

// Custos is the cost breakdown. Total covers the visit fee, labor, material
// and the distance charge (km driven times the per-km rate).
type Custos struct {
	ValorVisita   float64 `json:"valor_visita"`
	MaoDeObra     float64 `json:"mao_de_obra"`
	ValorMaterial float64 `json:"valor_material"`
	KMRodados     float64 `json:"km_rodados"`
	ValorKM       float64 `json:"valor_km"`
	Total         float64 `json:"total"`
}

// Assinaturas carries the embedded signature images, when collected.
type Assinaturas struct {
	Tecnico string `json:"tecnico"`
	Cliente string `json:"cliente"`
}

// Rodape holds the warranty terms and the signature lines.
type Rodape struct {
	Termos      string      `json:"termos"`
	Assinaturas Assinaturas `json:"assinaturas"`
}

// Build assembles the printable document for one order. The technician
// signature falls back to the company's default when the order carries none.
func Build(ordem store.OrdemServico, cliente store.Cliente, equipamento store.Equipamento, empresa store.Empresa) Documento {
	kmRodados := ordem.KMFinal - ordem.KMInicial
	if kmRodados < 0 {
		kmRodados = 0
	}

	tecnico := ordem.AssinaturaTecnico
	if tecnico == "" {
		tecnico = empresa.AssinaturaPadrao
	}

	return Documento{
		Header: Header{
			Empresa:     empresa,
			NumeroOrdem: ordem.ID,
			Data:        ordem.DataOS,
		},
		Cliente:     cliente,
		Equipamento: equipamento,
		Servico: Servico{
			TipoOrdem:     ordem.TipoOrdem,
			MotivoChamado: ordem.MotivoChamado,
			Constatado:    ordem.Constatado,
			ServExecutado: ordem.ServExecutado,
			Status:        ordem.StatusServico,
			Observacao:    ordem.Observacao,
		},
		Custos: Custos{
			ValorVisita:   ordem.ValorVisita,
			MaoDeObra:     ordem.MaoDeObra,
			ValorMaterial: ordem.ValorMaterial,
			KMRodados:     kmRodados,
			ValorKM:       ordem.UnitKM,
			Total:         ordem.ValorVisita + ordem.MaoDeObra + ordem.ValorMaterial + kmRodados*ordem.UnitKM,
		},
		Rodape: Rodape{
			Termos: empresa.PoliticasGarantia,
			Assinaturas: Assinaturas{
				Tecnico: tecnico,
				Cliente: ordem.AssinaturaCliente,
			},
		},
	}
}
