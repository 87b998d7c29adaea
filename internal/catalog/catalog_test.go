package catalog

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hung-0621/Book-Trade-APP/internal/money"
)

func randomItem(id string) Item {
	return Item{
		ID:     id,
		Name:   gofakeit.BookTitle(),
		Author: gofakeit.BookAuthor(),
		Price:  money.New(int64(gofakeit.Number(50, 900)), money.TWD),
	}
}

func TestSnapshotLookup(t *testing.T) {
	b1 := randomItem("b1")
	b2 := randomItem("b2")
	snapshot := NewSnapshot([]Item{b1, b2})

	got, ok := snapshot.Lookup("b1")
	require.True(t, ok)
	assert.Equal(t, b1, got)

	_, ok = snapshot.Lookup("missing")
	assert.False(t, ok)
}

func TestSnapshotPreservesFeedOrder(t *testing.T) {
	items := []Item{randomItem("b3"), randomItem("b1"), randomItem("b2")}
	snapshot := NewSnapshot(items)

	assert.Equal(t, items, snapshot.Items())
	assert.Equal(t, 3, snapshot.Len())
}

func TestSnapshotFirstDuplicateWins(t *testing.T) {
	first := randomItem("b1")
	second := randomItem("b1")
	snapshot := NewSnapshot([]Item{first, second})

	require.Equal(t, 1, snapshot.Len())
	got, ok := snapshot.Lookup("b1")
	require.True(t, ok)
	assert.Equal(t, first, got)
}
