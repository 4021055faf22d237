// cmd/passkeeper/cmd/mv.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"passkeeper/internal/domain/vault"
)

var mvForce bool

var mvCmd = &cobra.Command{
	Use:   "mv <источник>... <назначение>",
	Short: "Переместить или переименовать записи и группы",
	Long: `Команда mv работает как обычный mv: последний аргумент -
назначение, остальные - источники.

Запись можно переместить в группу (имя сохраняется) или на
новый путь "группа/запись" (переименование). Группу можно
только переименовать в несуществующее имя. При нескольких
источниках назначение обязано быть группой.

Примеры:
	passkeeper mv internet/github internet/gh
	passkeeper mv internet/github work
	passkeeper mv mail/gmail mail/yandex backup
	passkeeper mv internet web`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, dest := args[:len(args)-1], args[len(args)-1]

		db, err := app.Store.Load(cmd.Context(), true)
		if err != nil {
			return err
		}

		if len(sources) > 1 && !vault.IsGroupPath(dest) {
			return fmt.Errorf("%s: при нескольких источниках назначение должно быть группой", dest)
		}

		for _, src := range sources {
			if err := move(db, src, dest); err != nil {
				return err
			}
		}
		return app.Store.Save(cmd.Context(), db)
	},
}

func move(db *vault.Database, src, dest string) error {
	if vault.IsGroupPath(src) {
		return moveGroup(db, src, dest)
	}
	return moveEntry(db, src, dest)
}

// moveGroup переименовывает группу. В существующее имя не
// переименовываем: слияние групп было бы сюрпризом.
func moveGroup(db *vault.Database, src, dest string) error {
	if !vault.IsGroupPath(dest) {
		return fmt.Errorf("%s: группу можно переместить только в группу", src)
	}
	dest = strings.TrimRight(dest, "/")
	if db.Group(dest) != nil {
		return fmt.Errorf("%s: группа уже существует", dest)
	}

	subtree, err := db.Pop(src)
	if err != nil {
		return err
	}
	g, ok := subtree.(*vault.Group)
	if !ok {
		return fmt.Errorf("%s: не группа", src)
	}
	return db.PutGroup(dest, g)
}

func moveEntry(db *vault.Database, src, dest string) error {
	// Перемещение в группу сохраняет имя записи
	if vault.IsGroupPath(dest) {
		_, entry, err := vault.SplitPath(src)
		if err != nil {
			return err
		}
		dest = strings.TrimRight(dest, "/") + "/" + entry
	}
	if src == dest {
		return nil
	}

	if _, err := db.Entry(dest); err == nil {
		if !app.Confirm(fmt.Sprintf("Перезаписать %s?", dest), mvForce) {
			return nil
		}
	}

	subtree, err := db.Pop(src)
	if err != nil {
		return err
	}
	e, ok := subtree.(*vault.Entry)
	if !ok {
		return fmt.Errorf("%s: не запись", src)
	}
	return db.PutEntry(dest, e)
}

func init() {
	mvCmd.Flags().BoolVarP(&mvForce, "force", "f", false, "перезаписывать без подтверждения")
}
