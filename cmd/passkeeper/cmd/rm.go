// cmd/passkeeper/cmd/rm.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"passkeeper/internal/domain/vault"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <путь>...",
	Short: "Удалить записи или группы",
	Long: `Команда rm удаляет записи или группы целиком. Группа,
опустевшая после удаления последней записи, тоже удаляется.

Примеры:
	passkeeper rm internet/github
	passkeeper rm internet
	passkeeper rm mail/gmail mail/yandex`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.Store.Load(cmd.Context(), true)
		if err != nil {
			return err
		}

		// Сначала проверяем, что все пути существуют
		for _, path := range args {
			if _, err := db.Get(path); err != nil {
				return err
			}
		}

		if len(args) == 1 {
			kind := "запись"
			if vault.IsGroupPath(args[0]) {
				kind = "группу"
			}
			if !app.Confirm(fmt.Sprintf("Удалить %s %s?", kind, args[0]), rmForce) {
				return nil
			}
		} else {
			if !app.Confirm(fmt.Sprintf("Удалить %d объектов?", len(args)), rmForce) {
				return nil
			}
		}

		for _, path := range args {
			if _, err := db.Pop(path); err != nil {
				return err
			}
		}

		if err := app.Store.Save(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Printf("✅ Удалено: %d\n", len(args))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "удалять без подтверждения")
}
