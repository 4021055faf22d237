package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		group string
		entry string
		fails bool
	}{
		{name: "empty", path: "", group: "", entry: ""},
		{name: "group", path: "internet", group: "internet", entry: ""},
		{name: "group with slash", path: "internet/", group: "internet", entry: ""},
		{name: "entry", path: "internet/github", group: "internet", entry: "github"},
		{name: "too deep", path: "a/b/c", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, entry, err := SplitPath(tt.path)
			if tt.fails {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTooDeep)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.group, group)
			assert.Equal(t, tt.entry, entry)
		})
	}
}

func TestIsGroupPath(t *testing.T) {
	assert.True(t, IsGroupPath("internet"))
	assert.True(t, IsGroupPath("internet/"))
	assert.False(t, IsGroupPath("internet/github"))
}

func TestGet(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	subtree, err := db.Get("")
	require.NoError(t, err)
	assert.Same(t, db, subtree)

	subtree, err = db.Get("internet")
	require.NoError(t, err)
	group, ok := subtree.(*Group)
	require.True(t, ok)
	assert.Len(t, group.Entries, 2)

	subtree, err = db.Get("internet/github")
	require.NoError(t, err)
	entry, ok := subtree.(*Entry)
	require.True(t, ok)
	assert.Equal(t, "github", entry.Name)

	_, err = db.Get("internet/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutEntryCreatesGroupAndSorts(t *testing.T) {
	db := &Database{}

	require.NoError(t, db.PutEntry("internet/reddit", NewEntry("reddit")))
	require.NoError(t, db.PutEntry("internet/github", NewEntry("github")))

	g := db.Group("internet")
	require.NotNil(t, g)
	require.Len(t, g.Entries, 2)
	assert.Equal(t, "github", g.Entries[0].Name)
	assert.Equal(t, "reddit", g.Entries[1].Name)
}

func TestPutEntryReplaces(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	e := NewEntry("github")
	e.SetField("password", "new")
	require.NoError(t, db.PutEntry("internet/github", e))

	got, err := db.Entry("internet/github")
	require.NoError(t, err)
	password, _ := got.Field("password")
	assert.Equal(t, "new", password)

	g := db.Group("internet")
	assert.Len(t, g.Entries, 2)
}

func TestPopEntryPrunesEmptyGroup(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	popped, err := db.Pop("mail/gmail")
	require.NoError(t, err)
	entry, ok := popped.(*Entry)
	require.True(t, ok)
	assert.Equal(t, "gmail", entry.Name)

	// Группа mail осталась пустой и должна исчезнуть
	assert.Nil(t, db.Group("mail"))
}

func TestPopGroup(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	popped, err := db.Pop("internet")
	require.NoError(t, err)
	group, ok := popped.(*Group)
	require.True(t, ok)
	assert.Equal(t, "internet", group.Name)
	assert.Nil(t, db.Group("internet"))

	_, err = db.Pop("internet")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPopWholeDatabase(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	_, err = db.Pop("")
	require.NoError(t, err)
	assert.True(t, db.Empty())
}

func TestPutNodeReplacesSubtree(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	node, err := ParseNode("password: secret\nusername: user\n")
	require.NoError(t, err)
	require.NoError(t, db.Put("internet/github", node))

	e, err := db.Entry("internet/github")
	require.NoError(t, err)
	password, _ := e.Field("password")
	assert.Equal(t, "secret", password)
}

func TestPutEmptyNodeDeletes(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.NoError(t, db.Put("mail/gmail", nil))
	assert.Nil(t, db.Group("mail"))

	// Удаление несуществующего поддерева не ошибка
	require.NoError(t, db.Put("mail/gmail", nil))
}

func TestPutNodeWholeDatabase(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	node, err := ParseNode("work:\n  vpn:\n    password: pw\n")
	require.NoError(t, err)
	require.NoError(t, db.Put("", node))

	assert.Equal(t, []string{"work/vpn"}, db.Names())
}

func TestNames(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"internet/github",
		"internet/reddit",
		"mail/gmail",
	}, db.Names())
}
