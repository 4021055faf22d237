package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"passkeeper/internal/config"
	"passkeeper/internal/domain/vault"
	"passkeeper/internal/gpg"
	"passkeeper/internal/runner"
)

var (
	ErrDatabaseMissing = errors.New("database file does not exist")
	ErrLocked          = errors.New("database is locked by another process")
)

// Store - зашифрованное файловое хранилище базы.
// Вся база лежит в одном gpg-файле; запись атомарная, через
// временный файл и rename. Для изменяющих команд берется
// советующая блокировка на <path>.lock, чтобы две копии
// passkeeper не редактировали базу одновременно.
type Store struct {
	path          string
	gpgID         string
	gpg           *gpg.GPG
	run           runner.Runner
	log           *slog.Logger
	preReadHook   string
	postWriteHook string

	loaded    string // плейнтекст на момент последней загрузки/записи
	hasLoaded bool
	wrote     bool
	lockFile  *os.File
}

func New(cfg *config.Config, g *gpg.GPG, run runner.Runner, log *slog.Logger) *Store {
	return &Store{
		path:          cfg.Database,
		gpgID:         cfg.GPGID,
		gpg:           g,
		run:           run,
		log:           log,
		preReadHook:   cfg.PreReadHook,
		postWriteHook: cfg.PostWriteHook,
	}
}

// Path возвращает путь к файлу базы.
func (s *Store) Path() string {
	return s.path
}

// Exists сообщает, существует ли файл базы.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// Load расшифровывает и разбирает базу.
// lock=true берет блокировку до расшифровки - так работают
// все изменяющие команды; команды только для чтения не блокируют.
func (s *Store) Load(ctx context.Context, lock bool) (*vault.Database, error) {
	if s.preReadHook != "" {
		if err := s.run.Run(ctx, s.preReadHook); err != nil {
			return nil, fmt.Errorf("ошибка pre-read хука: %w", err)
		}
	}

	if !s.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseMissing, s.path)
	}

	if lock {
		if err := s.Lock(); err != nil {
			return nil, err
		}
	}

	data, err := s.gpg.Decrypt(ctx, s.path)
	if err != nil {
		return nil, err
	}

	db, err := vault.Parse([]byte(data))
	if err != nil {
		return nil, err
	}

	s.loaded = data
	s.hasLoaded = true
	return db, nil
}

// Save шифрует и записывает базу. Если сериализованный плейнтекст
// не отличается от загруженного, запись пропускается.
func (s *Store) Save(ctx context.Context, db *vault.Database) error {
	plaintext, err := db.Encode()
	if err != nil {
		return err
	}

	if s.hasLoaded && string(plaintext) == s.loaded {
		s.log.Debug("база не изменилась, запись пропущена")
		return nil
	}

	encrypted, err := s.gpg.Encrypt(ctx, string(plaintext), s.gpgID)
	if err != nil {
		return err
	}

	if err := s.writeAtomic([]byte(encrypted)); err != nil {
		return err
	}

	s.loaded = string(plaintext)
	s.hasLoaded = true
	s.wrote = true
	return nil
}

// Временный файл в той же директории, fsync и rename:
// либо на диске старая база, либо целиком новая.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".passkeeper-*")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка записи базы: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка синхронизации базы: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("ошибка замены базы: %w", err)
	}
	return nil
}

// Lock берет неблокирующий flock на <path>.lock.
// Блокируем не сам файл базы: при атомарной записи блокировка
// на нем потерялась бы вместе с rename.
func (s *Store) Lock() error {
	if s.lockFile != nil {
		return nil
	}

	lockPath := s.path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("ошибка открытия lock-файла: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}

	s.lockFile = f
	return nil
}

// Unlock снимает блокировку и удаляет lock-файл.
func (s *Store) Unlock() {
	if s.lockFile == nil {
		return
	}
	name := s.lockFile.Name()
	s.lockFile.Close()
	os.Remove(name)
	s.lockFile = nil
}

// Close снимает блокировку и, если база была записана,
// выполняет post-write хук (например, push в удаленный репозиторий).
func (s *Store) Close(ctx context.Context) error {
	s.Unlock()
	if s.wrote && s.postWriteHook != "" {
		if err := s.run.Run(ctx, s.postWriteHook); err != nil {
			return fmt.Errorf("ошибка post-write хука: %w", err)
		}
	}
	return nil
}
