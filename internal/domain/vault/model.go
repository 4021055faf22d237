package vault

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry - листовой узел дерева: поля одной учетной записи.
// Поля хранятся как yaml-мэппинг, чтобы при перезаписи базы
// сохранялись порядок полей и любые нестандартные поля.
type Entry struct {
	Name string
	node *yaml.Node
}

// Group - внутренний узел дерева, именованный набор записей.
type Group struct {
	Name    string
	Entries []*Entry
}

// Database - все содержимое базы паролей: группы с записями.
// Порядок групп соответствует порядку в файле, записи внутри
// группы всегда отсортированы по имени.
type Database struct {
	Groups []*Group
}

// NewEntry создает пустую запись с указанным именем.
func NewEntry(name string) *Entry {
	return &Entry{
		Name: name,
		node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
	}
}

// Field возвращает скалярное поле записи.
func (e *Entry) Field(name string) (string, bool) {
	for i := 0; i+1 < len(e.node.Content); i += 2 {
		key, value := e.node.Content[i], e.node.Content[i+1]
		if key.Value == name && value.Kind == yaml.ScalarNode && value.Tag != "!!null" {
			return value.Value, true
		}
	}
	return "", false
}

// SetField заменяет значение поля или добавляет поле в конец записи.
func (e *Entry) SetField(name, value string) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	for i := 0; i+1 < len(e.node.Content); i += 2 {
		if e.node.Content[i].Value == name {
			e.node.Content[i+1] = node
			return
		}
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
	e.node.Content = append(e.node.Content, key, node)
}

// Keywords возвращает ключевые слова записи в нижнем регистре.
// Поле keywords может быть как строкой, так и списком строк.
func (e *Entry) Keywords() []string {
	for i := 0; i+1 < len(e.node.Content); i += 2 {
		key, value := e.node.Content[i], e.node.Content[i+1]
		if key.Value != "keywords" {
			continue
		}
		switch value.Kind {
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				return nil
			}
			return []string{strings.ToLower(value.Value)}
		case yaml.SequenceNode:
			keywords := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				if item.Kind == yaml.ScalarNode {
					keywords = append(keywords, strings.ToLower(item.Value))
				}
			}
			return keywords
		}
	}
	return nil
}

// Entry возвращает запись группы по имени.
func (g *Group) Entry(name string) *Entry {
	for _, e := range g.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Parse разбирает YAML-представление базы.
// Пустой ввод дает пустую базу.
func Parse(data []byte) (*Database, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("некорректный yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Database{}, nil
	}
	return databaseFromNode(doc.Content[0])
}

// ParseNode разбирает YAML-текст в узел (для команды edit).
// Для пустого документа возвращает nil.
func ParseNode(data string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("некорректный yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

// Encode сериализует базу в YAML. Пустая база дает пустой вывод.
func (db *Database) Encode() ([]byte, error) {
	if len(db.Groups) == 0 {
		return nil, nil
	}
	return encodeNode(db.node())
}

// Marshal сериализует базу, группу или запись в YAML-строку.
func Marshal(subtree any) (string, error) {
	var node *yaml.Node
	switch v := subtree.(type) {
	case *Database:
		if len(v.Groups) == 0 {
			return "", nil
		}
		node = v.node()
	case *Group:
		node = v.node()
	case *Entry:
		node = v.node
	default:
		return "", fmt.Errorf("неподдерживаемый тип поддерева: %T", subtree)
	}
	data, err := encodeNode(node)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func encodeNode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (db *Database) node() *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, g := range db.Groups {
		root.Content = append(root.Content, scalarNode(g.Name), g.node())
	}
	return root
}

func (g *Group) node() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range g.Entries {
		node.Content = append(node.Content, scalarNode(e.Name), e.node)
	}
	return node
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func isNullNode(n *yaml.Node) bool {
	return n == nil || n.Tag == "!!null" ||
		(n.Kind == yaml.MappingNode && len(n.Content) == 0)
}

func databaseFromNode(n *yaml.Node) (*Database, error) {
	db := &Database{}
	if isNullNode(n) {
		return db, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("база: %w", ErrNotMapping)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if db.Group(name) != nil {
			return nil, fmt.Errorf("группа '%s': %w", name, ErrDuplicate)
		}
		group, err := groupFromNode(name, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		db.Groups = append(db.Groups, group)
	}
	return db, nil
}

func groupFromNode(name string, n *yaml.Node) (*Group, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	g := &Group{Name: name}
	if isNullNode(n) {
		return g, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("группа '%s': %w", name, ErrNotMapping)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		entryName := n.Content[i].Value
		if g.Entry(entryName) != nil {
			return nil, fmt.Errorf("запись '%s': %w", entryName, ErrDuplicate)
		}
		entry, err := entryFromNode(entryName, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		g.Entries = append(g.Entries, entry)
	}
	return g, nil
}

func entryFromNode(name string, n *yaml.Node) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if isNullNode(n) {
		return NewEntry(name), nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("запись '%s': %w", name, ErrNotMapping)
	}
	return &Entry{Name: name, node: n}, nil
}

func validateName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("'%s': %w", name, ErrInvalidName)
	}
	return nil
}
