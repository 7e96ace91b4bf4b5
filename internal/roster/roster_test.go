package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/diegoclair/attendance-bot/internal/database"
	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `members:
  - id: 33069
    name: Alice
    note: team lead
  - id: "33070"
  - id: 33071
    name: "  Carol  "
`

func TestParse(t *testing.T) {
	t.Run("should decode members in file order", func(t *testing.T) {
		members, err := Parse([]byte(sampleRoster))

		require.NoError(t, err)
		assert.Equal(t, []entity.Member{
			{ID: "33069", DisplayName: "Alice", Note: "team lead"},
			{ID: "33070", DisplayName: "學員33070"},
			{ID: "33071", DisplayName: "Carol"},
		}, members)
	})

	tests := []struct {
		name string
		data string
	}{
		{name: "empty document", data: "  \n"},
		{name: "missing id", data: "members:\n  - name: Bob\n"},
		{name: "duplicate id", data: "members:\n  - id: 1\n  - id: 1\n"},
		{name: "invalid yaml", data: "members: [\n"},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("should fall back to default when file is missing", func(t *testing.T) {
		members, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, Default(), members)
	})

	t.Run("should read the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleRoster), 0o644))

		members, err := Load(path)

		require.NoError(t, err)
		assert.Len(t, members, 3)
	})

	t.Run("should report the path of a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte("members:\n  - name: x\n"), 0o644))

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestDefault(t *testing.T) {
	members := Default()

	require.Len(t, members, domain.DefaultRosterLastID-domain.DefaultRosterFirstID+1)
	assert.Equal(t, entity.Member{ID: "33069", DisplayName: "學員33069"}, members[0])
	assert.Equal(t, "33085", members[len(members)-1].ID)
}

func TestSeed(t *testing.T) {
	db := database.SetupTestDB(t)
	defer db.Close()

	dm := database.NewInstance(db)
	ctx := context.Background()

	seeded, err := Seed(ctx, dm, []entity.Member{{ID: "33069", DisplayName: "Alice"}, {ID: "33070", DisplayName: "Bob"}})
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = Seed(ctx, dm, Default())
	require.NoError(t, err)
	assert.False(t, seeded)

	members, err := dm.Member().GetAll()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice", members[0].DisplayName)
}
