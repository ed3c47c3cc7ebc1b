// ABOUTME: HTTP-level tests for the API server
// ABOUTME: Exercises routing, envelopes and the error-to-status mapping

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/gist"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// newTestServer wires a seeded store and an API mux, plus a fake gist host
// the backup handlers talk to.
func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st := store.New(store.NewMemorySlot(), nil)
	require.NoError(t, st.Init())

	gistHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"files": map[string]any{"backup.json": map[string]string{"content": "{}"}},
		})
	}))
	t.Cleanup(gistHost.Close)

	mux := http.NewServeMux()
	New(st, gist.NewClient(gistHost.URL, nil), nil).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeError(t *testing.T, resp *http.Response) (string, int) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Erro   string `json:"erro"`
		Codigo int    `json:"codigo"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Erro, envelope.Codigo
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]string
	decodeData(t, resp, &status)
	assert.Equal(t, "ok", status["status"])
}

func TestClientes_CRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	// list the seeded clients
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/clientes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var clientes []store.Cliente
	decodeData(t, resp, &clientes)
	assert.Len(t, clientes, 2)

	// create
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/clientes", store.Cliente{
		NomeFantasia: "Novo Cliente",
		Email:        "novo@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created store.Cliente
	decodeData(t, resp, &created)
	assert.Equal(t, "cliente-3", created.ID)

	// read back
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/clientes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// partial update
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/clientes/"+created.ID,
		map[string]any{"email": "atualizado@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated store.Cliente
	decodeData(t, resp, &updated)
	assert.Equal(t, "atualizado@example.com", updated.Email)
	assert.Equal(t, "Novo Cliente", updated.NomeFantasia)

	// delete
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/clientes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/clientes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestClientes_SearchQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/clientes?search=padaria", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var clientes []store.Cliente
	decodeData(t, resp, &clientes)
	require.Len(t, clientes, 1)
	assert.Equal(t, "Padaria Pão Quente", clientes[0].NomeFantasia)
}

func TestDeleteCliente_ConflictMapsTo409(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/clientes/cliente-1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	erro, codigo := decodeError(t, resp)
	assert.Equal(t, http.StatusConflict, codigo)
	assert.Contains(t, erro, "ordens de serviço associadas")
}

func TestCreateOrdem_ValidationMapsTo400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/ordens", store.OrdemServico{
		ClienteID:     "cliente-99",
		EquipamentoID: "equipamento-1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	erro, _ := decodeError(t, resp)
	assert.Contains(t, erro, "Cliente cliente-99 não encontrado")
}

func TestOrdens_FilterByStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/ordens?status=Aberto", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ordens []store.OrdemServico
	decodeData(t, resp, &ordens)
	require.Len(t, ordens, 1)
	assert.Equal(t, store.StatusAberto, ordens[0].StatusServico)
}

func TestGetOrdem_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/ordens/OS-1999-0001", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPrintOrdem(t *testing.T) {
	srv, _ := newTestServer(t)
	orderID := fmt.Sprintf("OS-%d-0001", time.Now().Year())

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/ordens/"+orderID+"/imprimir", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]json.RawMessage
	decodeData(t, resp, &doc)
	assert.Contains(t, doc, "header")
	assert.Contains(t, doc, "custos")
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/clientes", "application/json", strings.NewReader("{broken"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	erro, _ := decodeError(t, resp)
	assert.Equal(t, "Corpo da requisição inválido", erro)
}

func TestAnexos_UploadAndDelete(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/anexos", map[string]any{
		"filename":  "nota.pdf",
		"mime":      "application/pdf",
		"base64":    "bm90YSBmaXNjYWw=",
		"linked_to": store.AnexoOwner{Entity: store.KindCliente, ID: "cliente-1"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var anexo store.Anexo
	decodeData(t, resp, &anexo)
	assert.Equal(t, "bm90YSBmaXNjYWw=", anexo.Base64)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/anexos/"+anexo.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAnexos_InvalidBase64(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/anexos", map[string]any{
		"filename":  "nota.pdf",
		"base64":    "not base64!!!",
		"linked_to": store.AnexoOwner{Entity: store.KindCliente, ID: "cliente-1"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	erro, _ := decodeError(t, resp)
	assert.Equal(t, "Conteúdo do anexo inválido", erro)
}

func TestLogs_FilterByEntity(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clientes", store.Cliente{NomeFantasia: "Auditado"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/logs?entity=cliente", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logs []store.LogAuditoria
	decodeData(t, resp, &logs)
	require.NotEmpty(t, logs)
	assert.Equal(t, store.KindCliente, logs[0].Entity)
	assert.Equal(t, store.AuditCreate, logs[0].Action)
}

func TestSettings_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/settings", store.Settings{
		EditMode:          "route",
		ConfirmNavigation: false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/settings", nil)
	var settings store.Settings
	decodeData(t, resp, &settings)
	assert.Equal(t, "route", settings.EditMode)
}

func TestDashboard(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats store.DashboardStats
	decodeData(t, resp, &stats)
	assert.Equal(t, 3, stats.TotalOrdens)
	assert.Equal(t, 2, stats.TotalClientes)
}

func TestExportImport_OverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	var exported bytes.Buffer
	_, err := exported.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	resp, err = http.Post(srv.URL+"/api/import", "application/json", &exported)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats store.ImportStats
	decodeData(t, resp, &stats)
	assert.Equal(t, 3, stats.Ordens)
	assert.Equal(t, 2, stats.Clientes)
}

func TestImport_InvalidPayloadOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/import", "application/json",
		strings.NewReader(`{"clientes":[]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	erro, _ := decodeError(t, resp)
	assert.Equal(t, "Formato de dados inválido", erro)
}

func TestReset(t *testing.T) {
	srv, st := newTestServer(t)

	_, err := st.CreateCliente(store.Cliente{NomeFantasia: "Temporário"})
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Len(t, st.ListClientes(""), 2)
}

func TestBackupPush_UsesSavedSettings(t *testing.T) {
	srv, st := newTestServer(t)

	settings := st.GetSettings()
	settings.Gist = &store.GistConfig{GistID: "abc123", Token: "tok", Filename: "backup.json"}
	st.UpdateSettings(settings)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/backup/push", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]string
	decodeData(t, resp, &result)
	assert.Contains(t, result["message"], "sucesso")
}

func TestBackupTest_ChunkedBodyCarriesConfig(t *testing.T) {
	srv, _ := newTestServer(t)

	// Wrapping the reader hides its length, so the client sends the body
	// chunked with ContentLength -1 on the server side.
	payload := io.MultiReader(strings.NewReader(
		`{"gist_id":"abc123","token":"tok","filename":"backup.json"}`))
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/backup/test", payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]string
	decodeData(t, resp, &result)
	assert.Contains(t, result["message"], "sucesso")
}

func TestBackupPush_MissingConfig(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/backup/push", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	erro, _ := decodeError(t, resp)
	assert.Equal(t, "Configuração incompleta. Preencha todos os campos.", erro)
}

func TestBackupPull_RemoteFailureMapsTo502(t *testing.T) {
	st := store.New(store.NewMemorySlot(), nil)
	require.NoError(t, st.Init())

	gistHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer gistHost.Close()

	mux := http.NewServeMux()
	New(st, gist.NewClient(gistHost.URL, nil), nil).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/backup/pull",
		store.GistConfig{GistID: "abc123", Token: "tok", Filename: "backup.json"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	erro, _ := decodeError(t, resp)
	assert.Contains(t, erro, "Bad credentials")
}
