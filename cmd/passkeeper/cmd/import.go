// cmd/passkeeper/cmd/import.go
package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"passkeeper/internal/domain/vault"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <файл.csv>",
	Short: "Импортировать базу из CSV (экспорт KeePassX 2)",
	Long: `Команда import заменяет базу содержимым CSV-файла в формате
экспорта KeePassX 2: колонки группа, название, логин, пароль,
URL, заметки. Имена групп должны начинаться с "Root/".

Существующая база перезаписывается целиком (с подтверждением).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия csv: %w", err)
		}
		defer f.Close()

		db, count, err := parseKeepassCSV(f)
		if err != nil {
			return err
		}

		if !app.ConfirmOverwrite(app.Store.Path(), importForce) {
			return nil
		}
		if err := app.Store.Lock(); err != nil {
			return err
		}

		if err := app.Store.Save(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Printf("✅ Импортировано записей: %d\n", count)
		return nil
	},
}

func parseKeepassCSV(f *os.File) (*vault.Database, int, error) {
	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка разбора csv: %w", err)
	}

	db := &vault.Database{}
	count := 0
	for i, record := range records {
		// Первая строка - заголовок
		if i == 0 {
			continue
		}
		if len(record) < 4 {
			return nil, 0, fmt.Errorf("строка %d: ожидается не меньше 4 колонок", i+1)
		}

		group, title := record[0], record[1]
		if !strings.HasPrefix(group, "Root/") {
			return nil, 0, fmt.Errorf("строка %d: запись '%s' вне группы", i+1, title)
		}
		group = strings.Trim(strings.TrimPrefix(group, "Root/"), "/")
		if group == "" {
			return nil, 0, fmt.Errorf("строка %d: запись '%s' вне группы", i+1, title)
		}

		e := vault.NewEntry(title)
		setIfNotEmpty := func(field, value string) {
			if value != "" {
				e.SetField(field, value)
			}
		}
		setIfNotEmpty("username", record[2])
		setIfNotEmpty("password", record[3])
		if len(record) > 4 {
			setIfNotEmpty("url", record[4])
		}
		if len(record) > 5 {
			setIfNotEmpty("notes", record[5])
		}

		if err := db.PutEntry(group+"/"+title, e); err != nil {
			return nil, 0, fmt.Errorf("строка %d: %w", i+1, err)
		}
		count++
	}
	return db, count, nil
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "перезаписывать без подтверждения")
}
