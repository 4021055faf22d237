// cmd/passkeeper/cmd/root.go
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"passkeeper/internal/config"
	"passkeeper/internal/keeper"
	"passkeeper/internal/utils/logger"
)

var (
	cfgFile string
	noColor bool
	cfg     *config.Config
	log     *slog.Logger
	app     *keeper.App
)

var rootCmd = &cobra.Command{
	Use:   "passkeeper",
	Short: "Passkeeper - менеджер паролей в одном gpg-файле",
	Long: `Passkeeper хранит все пароли в одном YAML-файле, зашифрованном
через gpg, и организует их в группы с записями.

Помимо обычных команд просмотра и редактирования есть autotype:
passkeeper определяет активное окно, находит подходящую запись
и сам вводит логин и пароль через xdotool.`,
	Version:            "0.2.0",
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "unclip", "help", "completion", "__complete":
		// Работают без конфигурации и базы
		return nil
	}

	// Для init конфигурации еще не существует
	allowMissing := cmd.Name() == "init"

	var err error
	cfg, err = config.Load(cfgFile, allowMissing)
	if errors.Is(err, config.ErrNotInitialized) {
		return fmt.Errorf("сначала выполните `passkeeper init`")
	}
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log = logger.New(cfg.Env)

	if noColor || !cfg.Color {
		color.NoColor = true
	}

	app = keeper.New(cfg, log)
	return nil
}

func teardownApp(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	// Снимаем блокировку и выполняем post-write хук
	return app.Close(cmd.Context())
}

// prompt спрашивает значение с значением по умолчанию.
func prompt(label, defaultValue string) string {
	fmt.Printf("%s [%s]: ", label, defaultValue)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return defaultValue
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

func init() {
	cobra.OnInitialize()

	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "отключить цветной вывод")
}
