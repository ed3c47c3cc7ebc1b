// ABOUTME: Tests for whole-dataset export and import
// ABOUTME: Covers the round-trip law, structural validation and token redaction

package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.CreateCliente(Cliente{NomeFantasia: "Cliente Extra", CPF: "111.222.333-44"})
	require.NoError(t, err)
	_, err = st.UpdateEquipamento("equipamento-2", map[string]any{"modelo": "GMCR-3000"})
	require.NoError(t, err)

	text, err := st.Export()
	require.NoError(t, err)

	// Import into a completely fresh store.
	fresh := New(NewMemorySlot(), nil)
	require.NoError(t, fresh.Init())

	stats, err := fresh.Import(text)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Ordens: 3, Clientes: 3, Equipamentos: 3}, stats)

	want := st.Data()
	got := fresh.Data()
	assert.Equal(t, want.Clientes, got.Clientes)
	assert.Equal(t, want.Equipamentos, got.Equipamentos)
	assert.Equal(t, want.OrdensServico, got.OrdensServico)
	assert.Equal(t, want.Empresa, got.Empresa)
	assert.Equal(t, len(want.LogsAuditoria), len(got.LogsAuditoria))
}

func TestImport_MissingCollectionRejected(t *testing.T) {
	st, _ := newTestStore(t)
	before := st.Data()

	// no "clientes" key
	_, err := st.Import(`{"ordens_servico":[],"equipamentos":[]}`)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	// aggregate untouched
	assert.Equal(t, before.Clientes, st.Data().Clientes)
	assert.Equal(t, before.OrdensServico, st.Data().OrdensServico)
}

func TestImport_NonArrayCollectionRejected(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Import(`{"ordens_servico":{},"clientes":[],"equipamentos":[]}`)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestImport_MalformedJSONRejected(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Import(`{broken`)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestImport_RebuildsCounters(t *testing.T) {
	st, _ := newTestStore(t)

	// A snapshot without counters, as exported by older versions.
	payload := `{
		"ordens_servico": [],
		"clientes": [{"id": "cliente-7", "nome_fantasia": "Sete"}],
		"equipamentos": []
	}`
	_, err := st.Import(payload)
	require.NoError(t, err)

	created, err := st.CreateCliente(Cliente{NomeFantasia: "Oito"})
	require.NoError(t, err)
	assert.Equal(t, "cliente-8", created.ID)
}

func TestExport_RedactsGistToken(t *testing.T) {
	st, _ := newTestStore(t)

	settings := st.GetSettings()
	settings.Gist = &GistConfig{GistID: "abc123", Token: "ghp_secret", Filename: "backup.json"}
	st.UpdateSettings(settings)

	text, err := st.Export()
	require.NoError(t, err)
	assert.NotContains(t, text, "ghp_secret")
	assert.Contains(t, text, "abc123")

	// redaction applies to the export only, not the stored settings
	require.NotNil(t, st.GetSettings().Gist)
	assert.Equal(t, "ghp_secret", st.GetSettings().Gist.Token)
}

func TestExport_IsPrettyPrintedBareSnapshot(t *testing.T) {
	st, _ := newTestStore(t)

	text, err := st.Export()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "{\n  "))

	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(text), &parsed))
	assert.Contains(t, parsed, "ordens_servico")
	assert.NotContains(t, parsed, "version")
	assert.NotContains(t, parsed, "lastUpdated")
}
