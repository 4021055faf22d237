package notify

import (
	"context"

	"passkeeper/internal/runner"
)

// Send показывает уведомление на рабочем столе. Используется при
// ошибках autotype: пользователь в этот момент смотрит на другое
// окно и вывода в терминал не увидит.
func Send(ctx context.Context, run runner.Runner, message string) error {
	return run.Run(ctx, "notify-send", "-i", "dialog-warning", "passkeeper", message)
}
