// ABOUTME: Remote backup client for a gist-hosting HTTP endpoint
// ABOUTME: Pushes and pulls the exported snapshot as a named file in a gist

package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// DefaultBaseURL is the public gist API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client talks to the gist host. It performs one round-trip per call, with no
// retries and no timeout beyond the transport's defaults.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a backup client against the given base URL. An empty
// baseURL selects the public endpoint.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger.With("component", "gist"),
	}
}

// gistFile is one file inside a gist payload.
type gistFile struct {
	Content string `json:"content"`
}

// gistBody is the request/response shape for gist file operations.
type gistBody struct {
	Files map[string]gistFile `json:"files"`
}

// errorBody is the host's error response shape.
type errorBody struct {
	Message string `json:"message"`
}

// validate fails fast when any config field is empty.
func validate(cfg store.GistConfig) error {
	if cfg.GistID == "" || cfg.Token == "" || cfg.Filename == "" {
		return &store.ValidationError{Message: "Configuração incompleta. Preencha todos os campos."}
	}
	return nil
}

// Push uploads the exported snapshot as the configured file. The content is
// whatever the caller exported at call time; local mutations during the
// round-trip are not reflected.
func (c *Client) Push(ctx context.Context, cfg store.GistConfig, content string) error {
	if err := validate(cfg); err != nil {
		return err
	}

	body, err := json.Marshal(gistBody{
		Files: map[string]gistFile{cfg.Filename: {Content: content}},
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+"/gists/"+cfg.GistID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "token "+cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("Erro ao enviar dados: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Erro ao enviar dados: %s", c.errorMessage(resp))
	}

	c.logger.Info("snapshot pushed", "gist", cfg.GistID, "filename", cfg.Filename)
	return nil
}

// Pull fetches the configured file's content from the gist. The caller is
// responsible for feeding the result into store.Import.
func (c *Client) Pull(ctx context.Context, cfg store.GistConfig) (string, error) {
	if err := validate(cfg); err != nil {
		return "", err
	}

	resp, err := c.get(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("Erro ao buscar dados: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("Erro ao buscar dados: %s", c.errorMessage(resp))
	}

	var parsed gistBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("Erro ao buscar dados: %w", err)
	}

	file, ok := parsed.Files[cfg.Filename]
	if !ok {
		return "", fmt.Errorf("Arquivo %q não encontrado no Gist", cfg.Filename)
	}

	c.logger.Info("snapshot pulled", "gist", cfg.GistID, "filename", cfg.Filename)
	return file.Content, nil
}

// TestConnection checks that the gist exists and the token can read it.
// The filename is not required for this check.
func (c *Client) TestConnection(ctx context.Context, cfg store.GistConfig) error {
	if cfg.GistID == "" || cfg.Token == "" {
		return &store.ValidationError{Message: "ID do Gist e Token são obrigatórios."}
	}

	resp, err := c.get(ctx, cfg)
	if err != nil {
		return fmt.Errorf("Erro ao testar conexão: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New("Não foi possível conectar ao Gist. Verifique o ID e o Token.")
	}
	return nil
}

func (c *Client) get(ctx context.Context, cfg store.GistConfig) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/gists/"+cfg.GistID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "token "+cfg.Token)
	return c.client.Do(req)
}

// errorMessage extracts the host's error message from a failed response,
// falling back to the HTTP status.
func (c *Client) errorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)

	var parsed errorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return resp.Status
}
