package store

import (
	"context"
	"os"
	"testing"

	"github.com/JonMunkholm/roster/internal/member"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, studentNumber, phone string) member.Record {
	t.Helper()
	r, err := member.New(member.Fields{
		Name:                "Ann Lee",
		Year:                "2",
		StudentNumber:       studentNumber,
		Email:               "ann@example.com",
		Phone:               phone,
		DietaryRequirements: "None",
		Role:                "Member",
		Tags:                []string{"exco"},
	})
	require.NoError(t, err)
	return r
}

// exerciseStore runs the shared Store contract against s, which must be empty.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	a := mustRecord(t, "A1234567B", "81234567")
	b := mustRecord(t, "B7654321C", "91234567")
	aLower := mustRecord(t, "a1234567b", "99999999")

	has, err := s.Has(ctx, a)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.Add(ctx, a))
	require.NoError(t, s.Add(ctx, b))

	has, err = s.Has(ctx, aLower)
	require.NoError(t, err)
	assert.True(t, has, "student numbers compare case-insensitively")

	assert.ErrorIs(t, s.Add(ctx, aLower), ErrDuplicate)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Equal(a))
	assert.True(t, list[1].Equal(b))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_SeedSkipsDuplicates(t *testing.T) {
	a := mustRecord(t, "A1234567B", "81234567")
	dup := mustRecord(t, "A1234567B", "91234567")

	m := NewMemory(a, dup)

	n, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemory_ListIsCopy(t *testing.T) {
	m := NewMemory(mustRecord(t, "A1234567B", "81234567"))

	list, _ := m.List(context.Background())
	list[0] = mustRecord(t, "Z7654321Z", "11111111")

	again, _ := m.List(context.Background())
	assert.Equal(t, "A1234567B", again[0].StudentNumber().String())
}

// TestPostgres runs against a real database when ROSTER_TEST_DATABASE_URL is
// set. Everything happens inside a transaction that is rolled back.
func TestPostgres(t *testing.T) {
	url := os.Getenv("ROSTER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Skipping integration test: ROSTER_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	pg := NewPostgres(tx)
	require.NoError(t, pg.EnsureSchema(ctx))
	_, err = tx.Exec(ctx, "DELETE FROM members")
	require.NoError(t, err)

	exerciseStore(t, pg)
}
