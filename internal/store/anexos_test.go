// ABOUTME: Tests for attachment storage
// ABOUTME: Covers owner validation, order linking and unlinking

package store

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrderID(n int) string {
	return fmt.Sprintf("OS-%d-%04d", time.Now().Year(), n)
}

func TestAddAnexo_LinksIntoOrder(t *testing.T) {
	st, _ := newTestStore(t)
	orderID := seedOrderID(1)

	payload := []byte("laudo tecnico em pdf")
	anexo, err := st.AddAnexo("laudo.pdf", "application/pdf", payload, AnexoOwner{Entity: KindOrdemServico, ID: orderID})
	require.NoError(t, err)

	assert.Contains(t, anexo.ID, "anexo-")
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), anexo.Base64)
	assert.Equal(t, int64(len(payload)), anexo.Size)

	ordem, err := st.GetOrdem(orderID)
	require.NoError(t, err)
	assert.Contains(t, ordem.Attachments, anexo.ID)
}

func TestAddAnexo_OwnerMustExist(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.AddAnexo("foto.jpg", "image/jpeg", []byte{0xff}, AnexoOwner{Entity: KindCliente, ID: "cliente-99"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Registro vinculado não encontrado", validation.Message)
}

func TestListAnexos_FiltersByOwner(t *testing.T) {
	st, _ := newTestStore(t)
	owner := AnexoOwner{Entity: KindEquipamento, ID: "equipamento-1"}

	first, err := st.AddAnexo("manual.pdf", "application/pdf", []byte("a"), owner)
	require.NoError(t, err)
	second, err := st.AddAnexo("etiqueta.jpg", "image/jpeg", []byte("b"), owner)
	require.NoError(t, err)
	_, err = st.AddAnexo("outro.pdf", "application/pdf", []byte("c"), AnexoOwner{Entity: KindCliente, ID: "cliente-1"})
	require.NoError(t, err)

	got := st.ListAnexos(owner)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestDeleteAnexo_UnlinksFromOrder(t *testing.T) {
	st, _ := newTestStore(t)
	orderID := seedOrderID(2)
	owner := AnexoOwner{Entity: KindOrdemServico, ID: orderID}

	keep, err := st.AddAnexo("antes.jpg", "image/jpeg", []byte("antes"), owner)
	require.NoError(t, err)
	drop, err := st.AddAnexo("depois.jpg", "image/jpeg", []byte("depois"), owner)
	require.NoError(t, err)

	require.NoError(t, st.DeleteAnexo(drop.ID))

	_, err = st.GetAnexo(drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ordem, err := st.GetOrdem(orderID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ordem.Attachments)
}

func TestDeleteAnexo_Missing(t *testing.T) {
	st, _ := newTestStore(t)
	assert.ErrorIs(t, st.DeleteAnexo("anexo-nope"), ErrNotFound)
}
