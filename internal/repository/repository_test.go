package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/parser"
)

func openMemory(t *testing.T) (*DB, ScanRepository) {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db, NewScanRepository(db, nil)
}

func newScan(text string, created time.Time) *entity.Scan {
	sum := sha256.Sum256([]byte(text))
	return &entity.Scan{
		SourcePath:    "/cards/" + text[:4] + ".txt",
		ContentHash:   sum[:],
		Format:        constants.TEXT,
		Method:        "text",
		OCRConfidence: 1,
		Status:        string(constants.ScanStatusParsed),
		Contact:       parser.Parse(text),
		CreatedAt:     created,
	}
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
		ok   bool
	}{
		{"sqlite:///var/lib/cardscan.db", "/var/lib/cardscan.db", true},
		{"file:cards.db?cache=shared", "file:cards.db?cache=shared", true},
		{":memory:", ":memory:", true},
		{"postgres://u:p@localhost:5432/cards", "", false},
	}
	for _, tt := range tests {
		got, ok := sqliteDSN(tt.dsn)
		assert.Equal(t, tt.ok, ok, tt.dsn)
		assert.Equal(t, tt.want, got, tt.dsn)
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{}, nil)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestOpenSQLite(t *testing.T) {
	db, _ := openMemory(t)
	assert.Equal(t, dialect.SQLite, db.Dialect())
	assert.NoError(t, db.HealthCheck(context.Background(), time.Second))
	// second migrate is a no-op
	assert.NoError(t, db.Migrate(context.Background()))
}

func TestSaveAndGet(t *testing.T) {
	_, repo := openMemory(t)
	ctx := context.Background()

	s := newScan("Jane Doe\nEngineer\nAcme\njane@acme.com\n+1 (555) 123-4567", time.Time{})
	s.OCRConfidence = 0.75
	require.NoError(t, repo.Save(ctx, s))
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.SourcePath, got.SourcePath)
	assert.Equal(t, s.ContentHash, got.ContentHash)
	assert.Equal(t, constants.TEXT, got.Format)
	assert.InDelta(t, 0.75, got.OCRConfidence, 1e-6)
	assert.Equal(t, "Jane", got.Contact.GivenName)
	assert.Equal(t, "Doe", got.Contact.FamilyName)
	require.Len(t, got.Contact.Emails, 1)
	assert.Equal(t, "jane@acme.com", got.Contact.Emails[0].Address)
	assert.Equal(t, s.Contact.Emails[0].ID, got.Contact.Emails[0].ID)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

	byHash, err := repo.GetByHash(ctx, s.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, s.ID, byHash.ID)
}

func TestSaveSameContentUpdates(t *testing.T) {
	_, repo := openMemory(t)
	ctx := context.Background()

	first := newScan("Jane Doe\njane@acme.com", time.Time{})
	require.NoError(t, repo.Save(ctx, first))

	again := newScan("Jane Doe\njane@acme.com", time.Time{})
	again.SourcePath = "/cards/moved.txt"
	again.NeedsReview = true
	again.Status = string(constants.ScanStatusNeedsReview)
	require.NoError(t, repo.Save(ctx, again))

	assert.Equal(t, first.ID, again.ID)
	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "/cards/moved.txt", all[0].SourcePath)
	assert.True(t, all[0].NeedsReview)
	assert.Equal(t, string(constants.ScanStatusNeedsReview), all[0].Status)
}

func TestGetMissing(t *testing.T) {
	_, repo := openMemory(t)
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, common.ErrNotFound))
	_, err = repo.GetByHash(context.Background(), []byte{1, 2, 3})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListNewestFirst(t *testing.T) {
	_, repo := openMemory(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, txt := range []string{"Alan Turing\nalan@bletchley.uk", "Ada Lovelace\nada@engine.org", "Grace Hopper\ngrace@navy.mil"} {
		require.NoError(t, repo.Save(ctx, newScan(txt, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Grace", all[0].Contact.GivenName)
	assert.Equal(t, "Alan", all[2].Contact.GivenName)

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "Ada", two[1].Contact.GivenName)
}
