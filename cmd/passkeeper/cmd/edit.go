// cmd/passkeeper/cmd/edit.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"passkeeper/internal/domain/vault"
)

var editCmd = &cobra.Command{
	Use:   "edit [путь]",
	Short: "Редактировать запись, группу или всю базу",
	Long: `Команда edit расшифровывает запрошенное поддерево во временный
файл и открывает его в редакторе ($EDITOR или edit.editor из
конфигурации). Каждое сохранение файла сразу же шифруется
и записывается в базу, так что долгую правку не страшно
прервать. Пустой файл означает удаление поддерева.

На время редактирования база заблокирована.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		db, err := app.Store.Load(ctx, true)
		if err != nil {
			return err
		}

		data, err := marshalForEdit(db, path)
		if err != nil {
			return err
		}

		tmp, err := writeEditFile(path, data)
		if err != nil {
			return err
		}

		var mu sync.Mutex
		stop, err := watchEditFile(ctx, tmp, func(node *yaml.Node) {
			mu.Lock()
			defer mu.Unlock()
			if err := db.Put(path, node); err != nil {
				log.Warn("промежуточное сохранение отклонено", "error", err)
				return
			}
			if err := app.Store.Save(ctx, db); err != nil {
				log.Warn("ошибка промежуточной записи базы", "error", err)
			}
		})
		if err != nil {
			return err
		}

		editorErr := runEditor(ctx, tmp)
		stop()
		if editorErr != nil {
			return editorErr
		}

		final, err := os.ReadFile(tmp)
		if err != nil {
			return err
		}
		node, err := vault.ParseNode(string(final))
		if err != nil {
			// Правки пользователя не выбрасываем
			return fmt.Errorf("%w (правки сохранены в %s)", err, tmp)
		}

		mu.Lock()
		defer mu.Unlock()
		if err := db.Put(path, node); err != nil {
			return fmt.Errorf("%w (правки сохранены в %s)", err, tmp)
		}
		if err := app.Store.Save(ctx, db); err != nil {
			return err
		}
		return os.Remove(tmp)
	},
}

// marshalForEdit возвращает YAML поддерева. Несуществующая запись
// редактируется с чистого листа.
func marshalForEdit(db *vault.Database, path string) (string, error) {
	subtree, err := db.Get(path)
	if errors.Is(err, vault.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return vault.Marshal(subtree)
}

func writeEditFile(path, data string) (string, error) {
	f, err := os.CreateTemp("", "passkeeper-*.yaml")
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	header := "# " + path + "\n"
	if path == "" {
		header = "# вся база\n"
	}
	if _, err := f.WriteString(header + data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// watchEditFile применяет каждое корректное сохранение временного
// файла. Некорректный или пустой yaml в промежуточном состоянии
// не ошибка: пользователь еще печатает, а редакторы усекают файл
// перед записью. Удаление по пустому файлу происходит только при
// финальном чтении после выхода из редактора.
func watchEditFile(ctx context.Context, path string, apply func(*yaml.Node)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания наблюдателя: %w", err)
	}
	// Наблюдаем за директорией, а не за файлом: многие редакторы
	// сохраняют через временный файл и rename, и наблюдение за
	// самим файлом умерло бы вместе с inode после первого сохранения.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("ошибка наблюдения за %s: %w", path, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					continue
				}
				node, err := vault.ParseNode(string(data))
				if err != nil || node == nil {
					continue
				}
				apply(node)
			case <-watcher.Errors:
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}, nil
}

func runEditor(ctx context.Context, path string) error {
	words := strings.Fields(viper.GetString("edit.editor"))
	if len(words) == 0 {
		words = []string{"vim"}
	}
	args := append(words[1:], path)
	if err := app.Run.Run(ctx, words[0], args...); err != nil {
		return fmt.Errorf("ошибка редактора: %w", err)
	}
	return nil
}
