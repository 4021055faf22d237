package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByName(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	matches := db.Find([]string{"git"})
	assert.Equal(t, []string{"internet/github"}, matches.Names())
}

func TestFindCaseInsensitive(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	matches := db.Find([]string{"GITHUB"})
	assert.Equal(t, []string{"internet/github"}, matches.Names())
}

func TestFindByKeyword(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	// Найденная по ключевому слову запись получает пометку
	matches := db.Find([]string{"goog"})
	assert.Equal(t, []string{"mail/gmail (google)"}, matches.Names())
}

func TestFindMultipleTerms(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	matches := db.Find([]string{"github", "reddit"})
	assert.Equal(t, []string{"internet/github", "internet/reddit"}, matches.Names())
}

func TestFindNoMatches(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	matches := db.Find([]string{"nothing"})
	assert.True(t, matches.Empty())
}

func TestFindFuzzy(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	// "ghb" не подстрока, но нечеткое совпадение с internet/github
	ranked := db.FindFuzzy([]string{"ghb"})
	require.NotEmpty(t, ranked)
	assert.Contains(t, ranked, "internet/github")
}

func TestFindFuzzyRankOrder(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	// Порядок релевантности, а не алфавитный
	ranked := db.FindFuzzy([]string{"reddit", "github"})
	assert.Equal(t, []string{"internet/reddit", "internet/github"}, ranked)
}

func TestSubset(t *testing.T) {
	db, err := Parse([]byte(sample))
	require.NoError(t, err)

	// Группы появляются в порядке первого упоминания
	matches := db.Subset([]string{"mail/gmail", "internet/github", "no/such"})
	assert.Equal(t, []string{"mail/gmail", "internet/github"}, matches.Names())
}
