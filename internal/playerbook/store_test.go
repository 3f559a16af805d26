package playerbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/database"
	"aoe4scout/internal/playerbook"
)

// setupTestBook creates a temporary in-memory SQLite database for testing.
func setupTestBook(t *testing.T) playerbook.PlayerBook {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return playerbook.New(db)
}

func TestUpsertAndGet(t *testing.T) {
	book := setupTestBook(t)

	err := book.Upsert(aoe4world.User{ID: 5414457, SteamID: "765611", Username: "krtko", AvatarURL: "m.png"})
	require.NoError(t, err)

	entry, err := book.Get(5414457)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "krtko", entry.Name)
	assert.Equal(t, "765611", entry.SteamID)
	assert.Equal(t, "m.png", entry.AvatarURL)
	assert.False(t, entry.AddedAt.IsZero())
	assert.Nil(t, entry.LastCheckedAt)

	missing, err := book.Get(404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertRefreshesExistingEntry(t *testing.T) {
	book := setupTestBook(t)

	require.NoError(t, book.Upsert(aoe4world.User{ID: 1, Username: "krtko"}))
	require.NoError(t, book.Upsert(aoe4world.User{ID: 1, Username: "krtko_v2", AvatarURL: "new.png"}))

	entry, err := book.Get(1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "krtko_v2", entry.Name)
	assert.Equal(t, "new.png", entry.AvatarURL)

	all, err := book.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFindByName(t *testing.T) {
	book := setupTestBook(t)

	require.NoError(t, book.Upsert(aoe4world.User{ID: 1, Username: "Krtko"}))

	entry, err := book.FindByName("krtko")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.ID)

	missing, err := book.FindByName("walrus")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAllIsSortedByName(t *testing.T) {
	book := setupTestBook(t)

	require.NoError(t, book.Upsert(aoe4world.User{ID: 2, Username: "walrus"}))
	require.NoError(t, book.Upsert(aoe4world.User{ID: 3, Username: "goblinGoo"}))
	require.NoError(t, book.Upsert(aoe4world.User{ID: 1, Username: "krtko"}))

	all, err := book.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "goblinGoo", all[0].Name)
	assert.Equal(t, "krtko", all[1].Name)
	assert.Equal(t, "walrus", all[2].Name)
}

func TestTouch(t *testing.T) {
	book := setupTestBook(t)

	require.NoError(t, book.Upsert(aoe4world.User{ID: 1, Username: "krtko"}))
	require.NoError(t, book.Touch(1))

	entry, err := book.Get(1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.NotNil(t, entry.LastCheckedAt)
}

func TestRemove(t *testing.T) {
	book := setupTestBook(t)

	require.NoError(t, book.Upsert(aoe4world.User{ID: 1, Username: "krtko"}))
	require.NoError(t, book.Remove(1))

	entry, err := book.Get(1)
	require.NoError(t, err)
	assert.Nil(t, entry)
}
