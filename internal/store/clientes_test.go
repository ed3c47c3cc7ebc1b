// ABOUTME: Tests for client CRUD operations
// ABOUTME: Covers id generation, diffs, the delete guard and search/ordering

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCliente_AssignsSequentialIDs(t *testing.T) {
	st, _ := newTestStore(t)

	// seed already holds cliente-1 and cliente-2
	first, err := st.CreateCliente(Cliente{TipoCliente: PessoaFisica, NomeFantasia: "Ana", Telefone: "123"})
	require.NoError(t, err)
	assert.Equal(t, "cliente-3", first.ID)

	second, err := st.CreateCliente(Cliente{TipoCliente: PessoaFisica, NomeFantasia: "Beto"})
	require.NoError(t, err)
	assert.Equal(t, "cliente-4", second.ID)

	got, err := st.GetCliente(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.NomeFantasia)
	assert.Equal(t, "123", got.Telefone)

	logs := st.ListLogs(LogFilter{Entity: KindCliente, EntityID: first.ID})
	require.Len(t, logs, 1)
	assert.Equal(t, AuditCreate, logs[0].Action)
	assert.Empty(t, logs[0].Diff)
}

func TestCreateCliente_NoIDReuseAfterDelete(t *testing.T) {
	st, _ := newTestStore(t)

	created, err := st.CreateCliente(Cliente{NomeFantasia: "Temporária"})
	require.NoError(t, err)
	assert.Equal(t, "cliente-3", created.ID)

	require.NoError(t, st.DeleteCliente(created.ID))

	// Counters are monotonic: the freed sequence is never handed out again.
	next, err := st.CreateCliente(Cliente{NomeFantasia: "Nova"})
	require.NoError(t, err)
	assert.Equal(t, "cliente-4", next.ID)
}

func TestGetCliente_NotFound(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.GetCliente("cliente-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCliente_ComputesFieldDiff(t *testing.T) {
	st, _ := newTestStore(t)

	updated, err := st.UpdateCliente("cliente-2", map[string]any{
		"telefone": "(11) 90000-0000",
		"cidade":   "São Paulo", // unchanged
	})
	require.NoError(t, err)
	assert.Equal(t, "(11) 90000-0000", updated.Telefone)
	assert.Equal(t, "cliente-2", updated.ID)

	logs := st.ListLogs(LogFilter{Entity: KindCliente, EntityID: "cliente-2"})
	require.Len(t, logs, 1)
	diff := logs[0].Diff
	require.Contains(t, diff, "telefone")
	assert.Equal(t, "(11) 98888-7766", diff["telefone"].Old)
	assert.Equal(t, "(11) 90000-0000", diff["telefone"].New)

	// unchanged fields never enter the diff
	assert.NotContains(t, diff, "cidade")
}

func TestUpdateCliente_EmptyPatch(t *testing.T) {
	st, _ := newTestStore(t)

	before, err := st.GetCliente("cliente-1")
	require.NoError(t, err)

	after, err := st.UpdateCliente("cliente-1", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, before, after)

	logs := st.ListLogs(LogFilter{Entity: KindCliente, EntityID: "cliente-1"})
	require.Len(t, logs, 1)
	assert.Equal(t, AuditUpdate, logs[0].Action)
	assert.Empty(t, logs[0].Diff)
}

func TestUpdateCliente_IgnoresIDInPatch(t *testing.T) {
	st, _ := newTestStore(t)

	updated, err := st.UpdateCliente("cliente-1", map[string]any{"id": "cliente-777"})
	require.NoError(t, err)
	assert.Equal(t, "cliente-1", updated.ID)

	logs := st.ListLogs(LogFilter{Entity: KindCliente, EntityID: "cliente-1"})
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].Diff)
}

func TestUpdateCliente_NotFound(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.UpdateCliente("cliente-999", map[string]any{"telefone": "1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCliente_BlockedByOrders(t *testing.T) {
	st, _ := newTestStore(t)

	// cliente-1 is referenced by the seed orders
	err := st.DeleteCliente("cliente-1")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = st.GetCliente("cliente-1")
	require.NoError(t, err)
}

func TestDeleteCliente_Succeeds(t *testing.T) {
	st, _ := newTestStore(t)

	created, err := st.CreateCliente(Cliente{NomeFantasia: "Sem Ordens"})
	require.NoError(t, err)

	require.NoError(t, st.DeleteCliente(created.ID))

	_, err = st.GetCliente(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	logs := st.ListLogs(LogFilter{Entity: KindCliente, EntityID: created.ID})
	require.Len(t, logs, 2)
	assert.Equal(t, AuditDelete, logs[0].Action)
	assert.Contains(t, logs[0].Comment, "Sem Ordens")
}

func TestListClientes_SearchAndOrder(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.CreateCliente(Cliente{NomeFantasia: "Álvaro", Email: "alvaro@email.com"})
	require.NoError(t, err)

	all := st.ListClientes("")
	require.Len(t, all, 3)
	// accented names order with Portuguese collation, not byte order
	assert.Equal(t, "Álvaro", all[0].NomeFantasia)
	assert.Equal(t, "Maria Oliveira", all[1].NomeFantasia)
	assert.Equal(t, "Padaria Pão Quente", all[2].NomeFantasia)

	byEmail := st.ListClientes("ALVARO@")
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Álvaro", byEmail[0].NomeFantasia)

	byCNPJ := st.ListClientes("98.765")
	require.Len(t, byCNPJ, 1)
	assert.Equal(t, "Padaria Pão Quente", byCNPJ[0].NomeFantasia)

	assert.Empty(t, st.ListClientes("nada-disso"))
}
