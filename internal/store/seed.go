// ABOUTME: Fixed seed dataset used on first run and on reset
// ABOUTME: One company, two clients, three equipment records, three orders

package store

import (
	"fmt"
	"time"
)

// seedSnapshot materializes the example dataset, dated at the given time.
func seedSnapshot(now time.Time) Snapshot {
	date := now.UTC().Format(time.RFC3339)
	year := now.Year()

	return Snapshot{
		Empresa: &Empresa{
			ID:       EmpresaID,
			Nome:     "TecAssist Manutenção e Serviços",
			CNPJ:     "12.345.678/0001-90",
			Endereco: "Rua das Oficinas, 120 - Centro, São Paulo - SP",
			Telefone: "(11) 3456-7890",
			Email:    "contato@tecassist.com.br",
			Site:     "www.tecassist.com.br",
			PoliticasGarantia: "Garantia de 90 dias sobre os serviços executados, " +
				"conforme o Código de Defesa do Consumidor.",
		},
		Clientes: []Cliente{
			{
				ID:           "cliente-1",
				TipoCliente:  PessoaJuridica,
				NomeFantasia: "Padaria Pão Quente",
				RazaoSocial:  "Pão Quente Alimentos Ltda",
				Endereco:     "Av. Brasil",
				NumEndereco:  "1500",
				Bairro:       "Jardim América",
				Cidade:       "São Paulo",
				Estado:       "SP",
				CEP:          "01430-001",
				Telefone:     "(11) 2233-4455",
				Email:        "compras@paoquente.com.br",
				Contato:      "Sr. Joaquim",
				CNPJ:         "98.765.432/0001-10",
				InscEstadual: "110.042.490.114",
			},
			{
				ID:           "cliente-2",
				TipoCliente:  PessoaFisica,
				NomeFantasia: "Maria Oliveira",
				RazaoSocial:  "",
				Endereco:     "Rua das Acácias",
				NumEndereco:  "77",
				Bairro:       "Vila Mariana",
				Cidade:       "São Paulo",
				Estado:       "SP",
				CEP:          "04101-300",
				Telefone:     "(11) 98888-7766",
				Email:        "maria.oliveira@email.com",
				Contato:      "Maria",
				RG:           "22.333.444-5",
				CPF:          "123.456.789-09",
			},
		},
		Equipamentos: []Equipamento{
			{ID: "equipamento-1", Nome: "Forno Industrial", Marca: "Prática", Modelo: "FTT-240", SN: "PRT-2021-00431"},
			{ID: "equipamento-2", Nome: "Câmara Fria", Marca: "Gelopar", Modelo: "GMCR-2100", SN: "GLP-2019-11872"},
			{ID: "equipamento-3", Nome: "Ar Condicionado Split", Marca: "Daikin", Modelo: "FTKP35", SN: "DKN-2022-55019"},
		},
		OrdensServico: []OrdemServico{
			{
				ID:            fmt.Sprintf("OS-%d-0001", year),
				TipoOrdem:     OrdemManutencao,
				DataOS:        date,
				DataChamado:   date,
				MotivoChamado: "Forno não atinge a temperatura programada",
				Constatado:    "Resistência inferior queimada",
				ServExecutado: "Substituição da resistência e teste de aquecimento",
				StatusServico: StatusConcluido,
				ValorVisita:   80,
				MaoDeObra:     250,
				ValorMaterial: 420,
				UnitKM:        2.5,
				KMInicial:     12040,
				KMFinal:       12062,
				ClienteID:     "cliente-1",
				EquipamentoID: "equipamento-1",
				Attachments:   []string{},
				AuditLog:      []string{},
			},
			{
				ID:            fmt.Sprintf("OS-%d-0002", year),
				TipoOrdem:     OrdemReparo,
				DataOS:        date,
				DataChamado:   date,
				MotivoChamado: "Câmara fria com formação excessiva de gelo",
				Constatado:    "Sensor de degelo com mau contato",
				ServExecutado: "Reaperto do chicote e degelo manual; acompanhamento em andamento",
				StatusServico: StatusEmAndamento,
				ValorVisita:   80,
				MaoDeObra:     180,
				UnitKM:        2.5,
				KMInicial:     12100,
				KMFinal:       12135,
				ClienteID:     "cliente-1",
				EquipamentoID: "equipamento-2",
				Attachments:   []string{},
				AuditLog:      []string{},
			},
			{
				ID:            fmt.Sprintf("OS-%d-0003", year),
				TipoOrdem:     OrdemInstalacao,
				DataOS:        date,
				DataChamado:   date,
				MotivoChamado: "Instalação de ar condicionado no quarto",
				StatusServico: StatusAberto,
				ValorVisita:   80,
				UnitKM:        2.5,
				ClienteID:     "cliente-2",
				EquipamentoID: "equipamento-3",
				Attachments:   []string{},
				AuditLog:      []string{},
			},
		},
		Anexos:        []Anexo{},
		LogsAuditoria: []LogAuditoria{},
		Settings: Settings{
			EditMode:          "modal",
			ConfirmNavigation: true,
		},
		Contadores: map[string]int{
			string(KindCliente):      2,
			string(KindEquipamento):  3,
			string(KindOrdemServico): 3,
		},
	}
}

// ResetToSeed discards the aggregate and restores the seed dataset.
func (s *Store) ResetToSeed() {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = seedSnapshot(time.Now())
	s.persistLocked()
}
