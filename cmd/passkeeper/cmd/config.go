// cmd/passkeeper/cmd/config.go
package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Открыть файл конфигурации в редакторе",
	Long: `Команда config открывает файл конфигурации в редакторе
($EDITOR или edit.editor). Изменения вступают в силу при
следующем запуске.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runEditor(cmd.Context(), cfg.Path)
	},
}
