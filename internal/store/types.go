// ABOUTME: Domain record types for the service-order management system
// ABOUTME: Field names follow the Portuguese wire format used by existing data exports

package store

import "time"

// StatusServico enumerates the lifecycle states of a service order.
type StatusServico string

const (
	StatusAberto      StatusServico = "Aberto"
	StatusEmAndamento StatusServico = "Em Andamento"
	StatusConcluido   StatusServico = "Concluído"
	StatusCancelado   StatusServico = "Cancelado"
)

// TipoCliente distinguishes individual clients from organizations.
type TipoCliente string

const (
	PessoaFisica   TipoCliente = "Pessoa Física"
	PessoaJuridica TipoCliente = "Pessoa Jurídica"
)

// TipoOrdem categorizes the kind of work a service order covers.
type TipoOrdem string

const (
	OrdemInstalacao TipoOrdem = "Instalação"
	OrdemManutencao TipoOrdem = "Manutenção"
	OrdemReparo     TipoOrdem = "Reparo"
	OrdemRevisao    TipoOrdem = "Revisão"
	OrdemOutro      TipoOrdem = "Outro"
)

// OrdemServico is a work ticket linking one client and one piece of equipment.
type OrdemServico struct {
	ID                 string        `json:"id"`
	TipoOrdem          TipoOrdem     `json:"tipo_ordem"`
	DataOS             string        `json:"data_os"`      // ISO-8601 date
	DataChamado        string        `json:"data_chamado"` // ISO-8601 date
	MotivoChamado      string        `json:"motivo_chamado"`
	Constatado         string        `json:"constatado"`
	ServExecutado      string        `json:"serv_executado"`
	StatusServico      StatusServico `json:"status_servico"`
	Observacao         string        `json:"observacao"`
	TipoMaterial       string        `json:"tipo_material"`
	Material           string        `json:"material"`
	ValorVisita        float64       `json:"valor_visita"`
	MaoDeObra          float64       `json:"mao_de_obra"`
	ValorMaterial      float64       `json:"valor_material"`
	UnitKM             float64       `json:"unit_km"`
	KMInicial          float64       `json:"km_inicial"`
	KMFinal            float64       `json:"km_final"`
	ClienteID          string        `json:"cliente_id"`
	EquipamentoID      string        `json:"equipamento_id"`
	Attachments        []string      `json:"attachments"`
	AuditLog           []string      `json:"audit_log"`
	AssinaturaTecnico  string        `json:"assinatura_tecnico,omitempty"` // base64 image
	AssinaturaCliente  string        `json:"assinatura_cliente,omitempty"` // base64 image
}

// Cliente is a customer record, either Pessoa Física or Pessoa Jurídica.
// The tax-id fields that apply depend on TipoCliente: CPF/RG for individuals,
// CNPJ and state/municipal registrations for organizations.
type Cliente struct {
	ID            string      `json:"id"`
	TipoCliente   TipoCliente `json:"tipo_cliente"`
	NomeFantasia  string      `json:"nome_fantasia"`
	RazaoSocial   string      `json:"razao_social"`
	Endereco      string      `json:"endereco"`
	NumEndereco   string      `json:"num_endereco"`
	Bairro        string      `json:"bairro"`
	Cidade        string      `json:"cidade"`
	Estado        string      `json:"estado"`
	CEP           string      `json:"cep"`
	Telefone      string      `json:"telefone"`
	Telefone2     string      `json:"telefone2"`
	Telefone3     string      `json:"telefone3"`
	Email         string      `json:"email"`
	Contato       string      `json:"contato"`
	RG            string      `json:"rg"`
	CPF           string      `json:"cpf"`
	CNPJ          string      `json:"cnpj"`
	InscEstadual  string      `json:"insc_estadual"`
	InscMunicipal string      `json:"insc_municipal"`
}

// Equipamento is a serviceable piece of equipment.
type Equipamento struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Modelo string `json:"modelo"`
	Marca  string `json:"marca"`
	SN     string `json:"sn"`
}

// EmpresaID is the fixed identity of the singleton company record.
const EmpresaID = "empresa-1"

// Empresa is the singleton company record printed on service-order documents.
type Empresa struct {
	ID                string `json:"id"`
	Nome              string `json:"nome"`
	CNPJ              string `json:"cnpj"`
	Endereco          string `json:"endereco"`
	Telefone          string `json:"telefone"`
	Logo              string `json:"logo"` // base64 image
	Email             string `json:"email"`
	Site              string `json:"site"`
	PoliticasGarantia string `json:"politicas_garantia"`
	AssinaturaPadrao  string `json:"assinatura_padrao,omitempty"` // default technician signature, base64 image
}

// EntityKind names an audited entity collection.
type EntityKind string

const (
	KindOrdemServico EntityKind = "ordem_servico"
	KindCliente      EntityKind = "cliente"
	KindEquipamento  EntityKind = "equipamento"
	KindEmpresa      EntityKind = "empresa"
)

// AnexoOwner references the entity an attachment belongs to.
type AnexoOwner struct {
	Entity EntityKind `json:"entity"`
	ID     string     `json:"id"`
}

// Anexo is an uploaded file embedded in the dataset as base64.
type Anexo struct {
	ID         string     `json:"id"`
	Filename   string     `json:"filename"`
	MIME       string     `json:"mime"`
	Base64     string     `json:"base64"`
	Size       int64      `json:"size"`
	UploadedAt time.Time  `json:"uploaded_at"`
	LinkedTo   AnexoOwner `json:"linked_to"`
}

// AuditAction is the kind of mutation an audit entry records.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// FieldChange holds the before/after values of a single changed field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// LogAuditoria is an append-only record of one create/update/delete operation.
type LogAuditoria struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Action    AuditAction            `json:"action"`
	Entity    EntityKind             `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Diff      map[string]FieldChange `json:"diff"`
	Comment   string                 `json:"comment"`
}

// GistConfig holds the remote-backup credentials and target file.
type GistConfig struct {
	GistID   string `json:"gist_id"`
	Token    string `json:"token"`
	Filename string `json:"filename"`
}

// Settings holds user preferences and the optional remote-backup configuration.
type Settings struct {
	EditMode          string      `json:"edit_mode"` // "modal" or "route"
	ConfirmNavigation bool        `json:"confirm_navigation"`
	Gist              *GistConfig `json:"gist,omitempty"`
}

// Snapshot is the root aggregate: every collection the store owns, plus the
// persisted per-kind id counters that keep identities monotonic across
// deletions and restarts.
type Snapshot struct {
	OrdensServico []OrdemServico `json:"ordens_servico"`
	Clientes      []Cliente      `json:"clientes"`
	Equipamentos  []Equipamento  `json:"equipamentos"`
	Empresa       *Empresa       `json:"empresa"`
	Anexos        []Anexo        `json:"anexos"`
	LogsAuditoria []LogAuditoria `json:"logs_auditoria"`
	Settings      Settings       `json:"settings"`
	Contadores    map[string]int `json:"contadores,omitempty"`
}
