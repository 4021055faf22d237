package vault

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Find возвращает новую базу с записями, чье имя содержит любую из
// подстрок (без учета регистра). Запись, найденная по ключевому слову,
// попадает в результат под именем "запись (ключевое слово)".
func (db *Database) Find(terms []string) *Database {
	lowered := make([]string, len(terms))
	for i, term := range terms {
		lowered[i] = strings.ToLower(term)
	}

	matches := &Database{}
	db.Each(func(group string, e *Entry) {
		name := strings.ToLower(e.Name)
		for _, term := range lowered {
			if strings.Contains(name, term) {
				_ = matches.PutEntry(group+"/"+e.Name, &Entry{Name: e.Name, node: e.node})
				return
			}
		}
		for _, keyword := range e.Keywords() {
			for _, term := range lowered {
				if strings.Contains(keyword, term) {
					annotated := e.Name + " (" + keyword + ")"
					_ = matches.PutEntry(group+"/"+annotated, &Entry{Name: annotated, node: e.node})
					return
				}
			}
		}
	})
	return matches
}

// FindFuzzy возвращает пути записей, подходящих под нечеткое
// совпадение с любым из запросов по полному пути "группа/запись",
// в порядке убывания релевантности.
func (db *Database) FindFuzzy(terms []string) []string {
	names := db.Names()
	seen := make(map[string]bool)
	var ranked []string
	for _, term := range terms {
		for _, m := range fuzzy.Find(term, names) {
			path := names[m.Index]
			if seen[path] {
				continue
			}
			seen[path] = true
			ranked = append(ranked, path)
		}
	}
	return ranked
}

// Subset возвращает новую базу из записей с указанными путями.
// Несуществующие пути пропускаются.
func (db *Database) Subset(paths []string) *Database {
	matches := &Database{}
	for _, path := range paths {
		if e, err := db.Entry(path); err == nil {
			_ = matches.PutEntry(path, &Entry{Name: e.Name, node: e.node})
		}
	}
	return matches
}
