// cmd/passkeeper/cmd/show.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"passkeeper/internal/clipboard"
	"passkeeper/internal/domain/vault"
)

var (
	showClip    bool
	showTimeout int
)

var showCmd = &cobra.Command{
	Use:   "show [путь]",
	Short: "Показать запись, группу или всю базу",
	Long: `Команда show расшифровывает базу и печатает запрошенное
поддерево в виде YAML. Без аргумента печатается вся база.

С флагом --clip пароль записи копируется в буфер обмена вместо
вывода на экран и очищается по таймауту.

Примеры:
	passkeeper show
	passkeeper show internet
	passkeeper show internet/github
	passkeeper show internet/github --clip`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		db, err := app.Store.Load(cmd.Context(), false)
		if err != nil {
			return err
		}

		subtree, err := db.Get(path)
		if err != nil {
			return err
		}

		if showClip {
			e, ok := subtree.(*vault.Entry)
			if !ok {
				return fmt.Errorf("%s: скопировать можно только пароль записи", path)
			}
			return copyPassword(e, path)
		}

		data, err := vault.Marshal(subtree)
		if err != nil {
			return err
		}
		return echo(cmd.Context(), strings.TrimRight(colorizeYAML(data), "\n"))
	},
}

// copyPassword кладет пароль записи в буфер обмена с таймаутом очистки.
func copyPassword(e *vault.Entry, path string) error {
	password, ok := e.Field("password")
	if !ok {
		return fmt.Errorf("%s: нет поля password", path)
	}

	timeout := showTimeout
	if timeout < 0 {
		timeout = viper.GetInt("clip.timeout")
	}
	if err := clipboard.Copy(password, timeout); err != nil {
		return err
	}

	if timeout > 0 {
		fmt.Printf("✓ Пароль %s скопирован в буфер обмена (очистка через %d с)\n", path, timeout)
	} else {
		fmt.Printf("✓ Пароль %s скопирован в буфер обмена\n", path)
	}
	return nil
}

func init() {
	showCmd.Flags().BoolVarP(&showClip, "clip", "c", false, "скопировать пароль в буфер обмена")
	showCmd.Flags().IntVarP(&showTimeout, "timeout", "t", -1, "таймаут очистки буфера в секундах (0 - не очищать)")
}
