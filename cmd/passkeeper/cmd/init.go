// cmd/passkeeper/cmd/init.go
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"passkeeper/internal/config"
	"passkeeper/internal/domain/vault"
	"passkeeper/internal/storage"
)

var (
	initForce  bool
	initGPGID  string
	initDBPath string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать базу паролей",
	Long: `Команда init выполняет первоначальную настройку:
	1. Определяет gpg-ключ для шифрования базы
	2. Записывает файл конфигурации
	3. Создает пустую зашифрованную базу

Без секретного gpg-ключа работа невозможна: создайте его заранее
командой gpg --gen-key.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		fmt.Println("=== Инициализация Passkeeper ===")
		fmt.Println()

		// GnuPG ID: флаг или первый секретный ключ из связки
		if initGPGID == "" {
			defaultID, err := app.GPG.DefaultKeyID(ctx)
			if err != nil {
				return fmt.Errorf("секретные gpg-ключи не найдены: %w", err)
			}
			initGPGID = prompt("GnuPG ID", defaultID)
		}

		if initDBPath == "" {
			initDBPath = prompt("Путь к базе", "~/.passkeeper.gpg")
		}
		dbPath, err := filepath.Abs(config.ExpandHome(initDBPath))
		if err != nil {
			return err
		}

		// Собираем хранилище для новой базы и сразу блокируем ее
		newCfg := *cfg
		newCfg.Database = dbPath
		newCfg.GPGID = initGPGID
		store := storage.New(&newCfg, app.GPG, app.Run, log)
		if err := store.Lock(); err != nil {
			return err
		}
		defer store.Unlock()

		if !app.ConfirmOverwrite(cfg.Path, initForce) {
			return nil
		}
		if err := config.Write(cfg.Path, dbPath, initGPGID); err != nil {
			return err
		}
		fmt.Printf("✓ Конфигурация записана в %s\n", cfg.Path)

		if !app.ConfirmOverwrite(dbPath, initForce) {
			return nil
		}
		if err := store.Save(ctx, &vault.Database{}); err != nil {
			return err
		}
		fmt.Printf("✓ Пустая база создана в %s\n", dbPath)

		fmt.Println()
		fmt.Println("✅ Инициализация успешно завершена!")
		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Добавьте первый пароль: passkeeper insert internet/github")
		fmt.Println("2. Или сгенерируйте его:   passkeeper generate internet/github")
		fmt.Println("3. Посмотрите дерево:      passkeeper ls")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "не спрашивать подтверждения")
	initCmd.Flags().StringVarP(&initGPGID, "gpg-id", "g", "", "идентификатор gpg-ключа для шифрования")
	initCmd.Flags().StringVarP(&initDBPath, "path", "p", "", "путь к файлу базы")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(autotypeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(unclipCmd)
}
