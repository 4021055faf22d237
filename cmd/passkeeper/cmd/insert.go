// cmd/passkeeper/cmd/insert.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"passkeeper/internal/keeper"
)

var (
	insertPassword string
	insertForce    bool
)

var insertCmd = &cobra.Command{
	Use:   "insert <группа/запись>",
	Short: "Вставить пароль в запись",
	Long: `Команда insert спрашивает пароль (ввод скрыт, с повтором для
проверки) и записывает его в поле password указанной записи.
Остальные поля записи не затрагиваются. Если записи нет, она
создается вместе с группой.

При перезаписи существующего пароля старое значение сохраняется
в поле old_password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		password := insertPassword
		if !cmd.Flags().Changed("password") {
			var err error
			password, err = readPassword(name)
			if err != nil {
				return err
			}
		}

		_, hadOld, err := app.Insert(cmd.Context(), name, password, insertForce)
		if errors.Is(err, keeper.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		if hadOld {
			fmt.Printf("✅ Пароль %s обновлен (старый сохранен в old_password)\n", name)
		} else {
			fmt.Printf("✅ Пароль %s сохранен\n", name)
		}
		return nil
	},
}

// readPassword дважды читает пароль со скрытым вводом.
func readPassword(name string) (string, error) {
	fd := int(os.Stdin.Fd())

	fmt.Printf("Пароль для %s: ", name)
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}

	fmt.Print("Повторите пароль: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("пароли не совпадают")
	}
	return string(first), nil
}

func init() {
	insertCmd.Flags().StringVarP(&insertPassword, "password", "p", "", "пароль (вместо скрытого ввода)")
	insertCmd.Flags().BoolVarP(&insertForce, "force", "f", false, "перезаписывать без подтверждения")
}
