// ABOUTME: Remote backup commands for os-admin
// ABOUTME: Pushes/pulls the exported dataset against the configured gist

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/gist"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

func newBackupCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Sincroniza o conjunto de dados com o Gist de backup",
	}

	cmd.AddCommand(newBackupPushCommand(opts))
	cmd.AddCommand(newBackupPullCommand(opts))
	cmd.AddCommand(newBackupTestCommand(opts))
	return cmd
}

// resolveGistConfig prefers the config saved in the store's settings, then
// the config file's backup section.
func resolveGistConfig(opts *rootOptions, st *store.Store) (store.GistConfig, error) {
	if saved := st.GetSettings().Gist; saved != nil && saved.GistID != "" {
		return *saved, nil
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return store.GistConfig{}, err
	}
	return store.GistConfig{
		GistID:   cfg.Backup.GistID,
		Token:    cfg.Backup.Token,
		Filename: cfg.Backup.Filename,
	}, nil
}

func newBackupPushCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Envia o conjunto de dados atual para o Gist",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			cfg, err := resolveGistConfig(opts, st)
			if err != nil {
				return err
			}

			text, err := st.Export()
			if err != nil {
				return err
			}

			client := gist.NewClient("", nil)
			if err := client.Push(cmd.Context(), cfg, text); err != nil {
				return err
			}
			color.Green("Dados enviados para o Gist com sucesso!")
			return nil
		},
	}
}

func newBackupPullCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Busca o backup do Gist e substitui os dados atuais",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			cfg, err := resolveGistConfig(opts, st)
			if err != nil {
				return err
			}

			client := gist.NewClient("", nil)
			text, err := client.Pull(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			stats, err := st.Import(text)
			if err != nil {
				return err
			}

			color.Green("Dados importados do Gist com sucesso!")
			fmt.Printf("  ordens:       %d\n", stats.Ordens)
			fmt.Printf("  clientes:     %d\n", stats.Clientes)
			fmt.Printf("  equipamentos: %d\n", stats.Equipamentos)
			return nil
		},
	}
}

func newBackupTestCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Testa a conexão com o Gist configurado",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			cfg, err := resolveGistConfig(opts, st)
			if err != nil {
				return err
			}

			client := gist.NewClient("", nil)
			if err := client.TestConnection(cmd.Context(), cfg); err != nil {
				return err
			}
			color.Green("Conexão com o Gist estabelecida com sucesso!")
			return nil
		},
	}
}
