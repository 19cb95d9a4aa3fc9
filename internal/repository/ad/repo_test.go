package ad

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func TestItems(t *testing.T) {
	repo, mock := newTestRepo(t)
	adID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "ad_id", "image_url", "text", "position"}).
		AddRow(uuid.New(), adID, "https://cdn.example/a.jpg", "first", 0).
		AddRow(uuid.New(), adID, "", "second", 1)

	mock.ExpectQuery(`SELECT id, ad_id, COALESCE\(image_url, ''\), COALESCE\(text, ''\), position`).
		WithArgs(adID).
		WillReturnRows(rows)

	items, err := repo.Items(context.Background(), adID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://cdn.example/a.jpg", items[0].ImageURL)
	assert.Equal(t, "first", items[0].Text)
	assert.Equal(t, 1, items[1].Position)
}

func TestItems_EmptyAd(t *testing.T) {
	repo, mock := newTestRepo(t)
	adID := uuid.New()

	mock.ExpectQuery(`SELECT id, ad_id, COALESCE\(image_url, ''\), COALESCE\(text, ''\), position`).
		WithArgs(adID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ad_id", "image_url", "text", "position"}))

	items, err := repo.Items(context.Background(), adID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
