// cmd/passkeeper/cmd/find.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"passkeeper/internal/domain/vault"
)

var (
	findFuzzy  bool
	findNoTree bool
	findPrint  bool
	findClip   bool
)

var findCmd = &cobra.Command{
	Use:   "find <запрос>...",
	Short: "Найти записи по имени или ключевым словам",
	Long: `Команда find ищет записи, чье имя или ключевое слово содержит
любую из подстрок запроса (без учета регистра). Запись, найденная
по ключевому слову, показывается как "запись (ключевое слово)".

Флаг --fuzzy включает нечеткий поиск по полному пути записи:
запрос "ghb" найдет "internet/github".

С флагом --clip пароль первой найденной записи копируется
в буфер обмена.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.Store.Load(cmd.Context(), false)
		if err != nil {
			return err
		}

		var matches *vault.Database
		var names []string
		if findFuzzy {
			// Порядок убывания релевантности
			names = db.FindFuzzy(args)
			matches = db.Subset(names)
		} else {
			matches = db.Find(args)
			names = matches.Names()
		}
		if len(names) == 0 {
			return fmt.Errorf("ничего не найдено: %s", strings.Join(args, " "))
		}

		if findClip {
			name := names[0]
			e, err := db.Entry(name)
			if err != nil {
				// Имя с пометкой ключевого слова берем из результата
				e, err = matches.Entry(name)
			}
			if err != nil {
				return err
			}
			return copyPassword(e, name)
		}

		if findPrint {
			data, err := vault.Marshal(matches)
			if err != nil {
				return err
			}
			return echo(cmd.Context(), strings.TrimRight(colorizeYAML(data), "\n"))
		}
		if findNoTree {
			return echo(cmd.Context(), strings.Join(names, "\n"))
		}
		return echo(cmd.Context(), strings.Join(treeLines(matches), "\n"))
	},
}

func init() {
	findCmd.Flags().BoolVar(&findFuzzy, "fuzzy", false, "нечеткий поиск по пути записи")
	findCmd.Flags().BoolVar(&findNoTree, "no-tree", false, "плоский список путей вместо дерева")
	findCmd.Flags().BoolVarP(&findPrint, "print", "p", false, "показать найденные записи целиком")
	findCmd.Flags().BoolVarP(&findClip, "clip", "c", false, "скопировать пароль первой найденной записи")
}
