package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/catalog"
)

var (
	board = catalog.Product{ID: 5, Name: "React Board Super Whizzy Fast", Price: 25000, Type: "Boards", Brand: "React"}
	hat   = catalog.Product{ID: 7, Name: "Core Blue Hat", Price: 1000, Type: "Hats", Brand: "NetCore"}
)

func TestAddItem(t *testing.T) {
	t.Run("Same product twice yields one line", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(board, 2))
		assert.NoError(t, b.AddItem(board, 3))

		assert.Len(t, b.Lines, 1)
		assert.Equal(t, 5, b.Lines[0].Quantity)
	})

	t.Run("Lines keep insertion order", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(hat, 1))
		assert.NoError(t, b.AddItem(board, 1))
		assert.NoError(t, b.AddItem(hat, 1))

		assert.Equal(t, 7, b.Lines[0].Product.ID)
		assert.Equal(t, 5, b.Lines[1].Product.ID)
	})

	t.Run("Merge keeps the loaded product", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(board, 1))
		older := board
		older.Price = 100
		assert.NoError(t, b.AddItem(older, 1))

		assert.Len(t, b.Lines, 1)
		assert.Equal(t, int64(25000), b.Lines[0].Product.Price)
		assert.Equal(t, 2, b.Lines[0].Quantity)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		for _, q := range []int{0, -1} {
			b := NewBasket("owner", mytime.ExampleTime)
			err := b.AddItem(board, q)
			assert.Error(t, err)
			assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
			assert.Empty(t, b.Lines)
		}
	})

	t.Run("Unresolved product", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		err := b.AddItem(catalog.Product{}, 1)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
		assert.Empty(t, b.Lines)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Decrement", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(board, 5))

		changed, err := b.RemoveItem(5, 2)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 3, b.Lines[0].Quantity)
	})

	t.Run("Remove exact quantity removes the line", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(board, 5))

		changed, err := b.RemoveItem(5, 5)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Empty(t, b.Lines)
	})

	t.Run("Remove more than present removes the line", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(hat, 1))
		assert.NoError(t, b.AddItem(board, 5))

		changed, err := b.RemoveItem(5, 6)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Len(t, b.Lines, 1)
		assert.Equal(t, 7, b.Lines[0].Product.ID)
	})

	t.Run("Remove absent product is a no-op", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(board, 5))

		changed, err := b.RemoveItem(999, 1)
		assert.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, b.Lines, 1)
		assert.Equal(t, 5, b.Lines[0].Quantity)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		b := NewBasket("owner", mytime.ExampleTime)
		assert.NoError(t, b.AddItem(board, 5))

		_, err := b.RemoveItem(5, 0)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
		assert.Equal(t, 5, b.Lines[0].Quantity)
	})
}
