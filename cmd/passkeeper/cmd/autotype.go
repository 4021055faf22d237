// cmd/passkeeper/cmd/autotype.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"passkeeper/internal/autotype"
	"passkeeper/internal/domain/vault"
	"passkeeper/internal/menu"
	"passkeeper/internal/notify"
	"passkeeper/internal/x11"
)

var (
	autotypeSequence string
	autotypeMenu     string
)

var autotypeCmd = &cobra.Command{
	Use:   "autotype",
	Short: "Ввести логин и пароль в активное окно",
	Long: `Команда autotype определяет заголовок активного окна, находит
подходящие записи по имени и ключевым словам и вводит данные
через xdotool. Если подошло несколько записей (или ни одной),
выбор предлагается через dmenu.

Последовательность ввода берется из поля autotype записи, иначе
используется логин-Tab-пароль-Enter. Плейсхолдер <поле> вводит
значение поля, !N делает паузу N секунд, остальное - клавиши.

Если за время ввода активное окно сменилось, ввод прерывается:
пароль не должен попасть в чужое окно.

Команду удобно повесить на глобальную горячую клавишу.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if !cmd.Flags().Changed("menu") {
			autotypeMenu = viper.GetString("autotype.menu")
		}

		db, err := app.Store.Load(ctx, false)
		if err != nil {
			return err
		}

		window, err := x11.ActiveWindow(ctx, app.Run)
		if err != nil {
			return notifyError(ctx, fmt.Errorf("ошибка определения активного окна: %w", err))
		}

		name, err := chooseEntry(ctx, db, window.Title)
		if errors.Is(err, menu.ErrNothingChosen) {
			return nil
		}
		if err != nil {
			return notifyError(ctx, err)
		}

		e, err := db.Entry(name)
		if err != nil {
			return notifyError(ctx, err)
		}

		keys, err := autotype.Keys(e, autotypeSequence)
		if err != nil {
			return notifyError(ctx, err)
		}

		keyboard := x11.NewKeyboard(app.Run, viper.GetInt("autotype.delay"))
		err = autotype.Perform(ctx, e, keys, autotype.Options{
			Keyboard: keyboard,
			ActiveWindow: func(ctx context.Context) (x11.Window, error) {
				return x11.ActiveWindow(ctx, app.Run)
			},
			Window: window,
		})
		if err != nil {
			return notifyError(ctx, err)
		}
		return nil
	},
}

// chooseEntry подбирает запись под заголовок окна. Единственное
// совпадение выбирается сразу, иначе выбор делает пользователь.
func chooseEntry(ctx context.Context, db *vault.Database, title string) (string, error) {
	title = strings.ToLower(title)

	var matches []string
	db.Each(func(group string, e *vault.Entry) {
		path := group + "/" + e.Name
		if strings.Contains(title, strings.ToLower(e.Name)) {
			matches = append(matches, path)
			return
		}
		for _, keyword := range e.Keywords() {
			if strings.Contains(title, keyword) {
				matches = append(matches, path)
				return
			}
		}
	})

	if len(matches) == 1 {
		return matches[0], nil
	}

	choices := matches
	if len(choices) == 0 {
		choices = db.Names()
	}
	sort.Strings(choices)

	return menu.Select(ctx, app.Run, autotypeMenu, choices)
}

// notifyError показывает ошибку автотайпа десктопным уведомлением:
// команда обычно висит на горячей клавише и терминала у нее нет.
func notifyError(ctx context.Context, err error) error {
	if nerr := notify.Send(ctx, app.Run, err.Error()); nerr != nil {
		log.Warn("ошибка отправки уведомления", "error", nerr)
	}
	return err
}

func init() {
	autotypeCmd.Flags().StringVarP(&autotypeSequence, "sequence", "s", "", "последовательность ввода (перекрывает поле autotype)")
	autotypeCmd.Flags().StringVarP(&autotypeMenu, "menu", "m", "dmenu", "программа выбора записи (dmenu-совместимая)")
}
