// cmd/passkeeper/cmd/unclip.go
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"passkeeper/internal/clipboard"
)

var (
	unclipTimeout  int
	unclipChecksum string
)

// unclipCmd - служебная команда: ее запускает сам passkeeper в фоне
// после копирования пароля. Выждав таймаут, она очищает буфер
// обмена, но только если тот все еще содержит скопированный пароль
// (сверяется по контрольной сумме, сам пароль процессу не передается).
var unclipCmd = &cobra.Command{
	Use:    "unclip",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		time.Sleep(time.Duration(unclipTimeout) * time.Second)
		return clipboard.Clear(unclipChecksum)
	},
}

func init() {
	unclipCmd.Flags().IntVar(&unclipTimeout, "timeout", 45, "сколько секунд ждать перед очисткой")
	unclipCmd.Flags().StringVar(&unclipChecksum, "checksum", "", "sha256 содержимого, которое нужно очистить")
}
