// cmd/passkeeper/cmd/ls.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"passkeeper/internal/domain/vault"
)

var lsNoTree bool

var lsCmd = &cobra.Command{
	Use:   "ls [группа]",
	Short: "Показать дерево групп и записей",
	Long: `Команда ls печатает имена групп и записей в виде дерева.
Сами пароли не расшифровываются в вывод - только структура базы.

Примеры:
	passkeeper ls
	passkeeper ls internet
	passkeeper ls --no-tree`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.Store.Load(cmd.Context(), false)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			name := strings.TrimRight(args[0], "/")
			g := db.Group(name)
			if g == nil {
				return fmt.Errorf("%s: группа не найдена", name)
			}
			db = &vault.Database{Groups: []*vault.Group{g}}
		}

		if db.Empty() {
			fmt.Println("База пуста")
			return nil
		}

		if lsNoTree {
			return echo(cmd.Context(), strings.Join(db.Names(), "\n"))
		}
		return echo(cmd.Context(), strings.Join(treeLines(db), "\n"))
	},
}

// treeLines строит строки дерева: группы как корни,
// записи как ветки с ├── и └──.
func treeLines(db *vault.Database) []string {
	groupColor := color.New(color.FgBlue, color.Bold)

	var lines []string
	for _, g := range db.Groups {
		lines = append(lines, groupColor.Sprint(g.Name))
		for i, e := range g.Entries {
			branch := "├── "
			if i == len(g.Entries)-1 {
				branch = "└── "
			}
			lines = append(lines, branch+e.Name)
		}
	}
	return lines
}

func init() {
	lsCmd.Flags().BoolVar(&lsNoTree, "no-tree", false, "плоский список путей вместо дерева")
}
