package vault

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsGroupPath сообщает, именует ли путь группу:
// либо в нем нет разделителя, либо после разделителя пусто ("group/").
func IsGroupPath(path string) bool {
	parts := strings.SplitN(path, "/", 2)
	return len(parts) == 1 || parts[1] == ""
}

// SplitPath разбивает путь на имя группы и имя записи.
// Пустой путь означает всю базу; "group" и "group/" - группу;
// "group/entry" - запись. Более глубокая вложенность - ошибка.
func SplitPath(path string) (group, entry string, err error) {
	if path == "" {
		return "", "", nil
	}
	if IsGroupPath(path) {
		return strings.TrimRight(path, "/"), "", nil
	}
	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%s: %w", path, ErrTooDeep)
	}
	return parts[0], parts[1], nil
}

// Group возвращает группу по имени или nil.
func (db *Database) Group(name string) *Group {
	for _, g := range db.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Get возвращает поддерево по пути: всю базу, группу или запись.
func (db *Database) Get(path string) (any, error) {
	group, entry, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	if group == "" {
		return db, nil
	}
	g := db.Group(group)
	if g == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if entry == "" {
		return g, nil
	}
	e := g.Entry(entry)
	if e == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return e, nil
}

// Entry возвращает запись по пути "group/entry".
func (db *Database) Entry(path string) (*Entry, error) {
	subtree, err := db.Get(path)
	if err != nil {
		return nil, err
	}
	e, ok := subtree.(*Entry)
	if !ok {
		return nil, fmt.Errorf("%s: не запись", path)
	}
	return e, nil
}

// PutEntry добавляет или заменяет запись, создавая группу при
// необходимости. Записи группы после вставки сортируются по имени.
func (db *Database) PutEntry(path string, e *Entry) error {
	group, entry, err := SplitPath(path)
	if err != nil {
		return err
	}
	if group == "" || entry == "" {
		return fmt.Errorf("%s: не путь записи", path)
	}
	e.Name = entry
	g := db.Group(group)
	if g == nil {
		g = &Group{Name: group}
		db.Groups = append(db.Groups, g)
	}
	if old := g.Entry(entry); old != nil {
		*old = *e
	} else {
		g.Entries = append(g.Entries, e)
	}
	g.sort()
	return nil
}

// PutGroup добавляет или заменяет группу целиком.
func (db *Database) PutGroup(name string, g *Group) error {
	name = strings.TrimRight(name, "/")
	if name == "" || !IsGroupPath(name) {
		return fmt.Errorf("%s: не имя группы", name)
	}
	g.Name = name
	g.sort()
	if old := db.Group(name); old != nil {
		*old = *g
	} else {
		db.Groups = append(db.Groups, g)
	}
	return nil
}

// Put заменяет поддерево по пути разобранным yaml-узлом.
// Пустой узел означает удаление поддерева (без подтверждения -
// подтверждение на совести вызывающего).
func (db *Database) Put(path string, node *yaml.Node) error {
	if isNullNode(node) {
		if _, err := db.Pop(path); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return nil
	}

	group, entry, err := SplitPath(path)
	if err != nil {
		return err
	}

	switch {
	case group == "":
		replacement, err := databaseFromNode(node)
		if err != nil {
			return err
		}
		*db = *replacement
		db.Sort()
	case entry == "":
		g, err := groupFromNode(group, node)
		if err != nil {
			return err
		}
		return db.PutGroup(group, g)
	default:
		e, err := entryFromNode(entry, node)
		if err != nil {
			return err
		}
		return db.PutEntry(path, e)
	}
	return nil
}

// Pop удаляет поддерево и возвращает его. Опустевшая после
// удаления записи группа тоже удаляется.
func (db *Database) Pop(path string) (any, error) {
	group, entry, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	// Вся база
	if group == "" {
		db.Groups = nil
		return nil, nil
	}

	g := db.Group(group)
	if g == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	// Группа целиком
	if entry == "" {
		db.removeGroup(group)
		return g, nil
	}

	e := g.Entry(entry)
	if e == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	for i, candidate := range g.Entries {
		if candidate == e {
			g.Entries = append(g.Entries[:i], g.Entries[i+1:]...)
			break
		}
	}
	if len(g.Entries) == 0 {
		db.removeGroup(group)
	}
	return e, nil
}

func (db *Database) removeGroup(name string) {
	for i, g := range db.Groups {
		if g.Name == name {
			db.Groups = append(db.Groups[:i], db.Groups[i+1:]...)
			return
		}
	}
}

// Sort сортирует записи в каждой группе по имени.
// Порядок самих групп не меняется.
func (db *Database) Sort() {
	for _, g := range db.Groups {
		g.sort()
	}
}

func (g *Group) sort() {
	sort.Slice(g.Entries, func(i, j int) bool {
		return g.Entries[i].Name < g.Entries[j].Name
	})
}

// Each обходит записи базы в порядке хранения.
func (db *Database) Each(fn func(group string, e *Entry)) {
	for _, g := range db.Groups {
		for _, e := range g.Entries {
			fn(g.Name, e)
		}
	}
}

// Names возвращает пути всех записей в порядке хранения.
func (db *Database) Names() []string {
	var names []string
	db.Each(func(group string, e *Entry) {
		names = append(names, group+"/"+e.Name)
	})
	return names
}

// Empty сообщает, пуста ли база.
func (db *Database) Empty() bool {
	return len(db.Groups) == 0
}
