// ABOUTME: Dataset commands for os-admin: export, import, reset and audit
// ABOUTME: Each command opens the store directly over the configured slot

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta o conjunto de dados completo como JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			text, err := st.Export()
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Println(text)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			color.Green("Dados exportados para %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the export to a file instead of stdout")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Importa um JSON exportado, substituindo os dados atuais",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			stats, err := st.Import(string(raw))
			if err != nil {
				return err
			}

			color.Green("Dados importados com sucesso")
			fmt.Printf("  ordens:       %d\n", stats.Ordens)
			fmt.Printf("  clientes:     %d\n", stats.Clientes)
			fmt.Printf("  equipamentos: %d\n", stats.Equipamentos)
			return nil
		},
	}
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restaura o conjunto de dados de exemplo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("reset discards all current data; re-run with --yes to confirm")
			}

			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			st.ResetToSeed()
			color.Green("Dados de exemplo restaurados")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm discarding the current data")
	return cmd
}

func newAuditCommand(opts *rootOptions) *cobra.Command {
	var entity string
	var entityID string
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Lista o histórico de auditoria, mais recentes primeiro",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closer()

			entries := st.ListLogs(store.LogFilter{
				Entity:   store.EntityKind(entity),
				EntityID: entityID,
			})
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if len(entries) == 0 {
				fmt.Println("Nenhum registro encontrado")
				return nil
			}

			gray := color.New(color.FgHiBlack)
			for _, e := range entries {
				gray.Printf("%s  ", e.Timestamp.Format("2006-01-02 15:04:05"))
				switch e.Action {
				case store.AuditCreate:
					color.New(color.FgGreen).Printf("%-6s", e.Action)
				case store.AuditDelete:
					color.New(color.FgRed).Printf("%-6s", e.Action)
				default:
					color.New(color.FgYellow).Printf("%-6s", e.Action)
				}
				fmt.Printf("  %s %s", e.Entity, e.EntityID)
				if len(e.Diff) > 0 {
					gray.Printf("  (%d campos)", len(e.Diff))
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "filter by entity kind (ordem_servico, cliente, equipamento, empresa)")
	cmd.Flags().StringVar(&entityID, "id", "", "filter by entity id")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of entries to show (0 for all)")
	return cmd
}
