package cart

import (
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/aura_shop/internal/models"
)

func product(id, price string) models.Product {
	return models.Product{ID: id, Name: "product " + id, Price: decimal.RequireFromString(price)}
}

func TestAddToCart_AppendsThenMerges(t *testing.T) {
	s := NewStore()
	a := product("a", "10.00")

	s.AddToCart(a)
	s.AddToCart(a)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, s.IsOpen())
}

func TestAddToCart_KeepsFirstAddedOrder(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "1"))
	s.AddToCart(product("b", "1"))
	s.AddToCart(product("a", "1"))
	s.AddToCart(product("c", "1"))

	var ids []string
	for _, it := range s.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestTotalIsExact(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "10.00"))
	s.AddToCart(product("a", "10.00"))
	s.AddToCart(product("b", "25.50"))

	assert.Equal(t, 3, s.Count())
	assert.True(t, s.Total().Equal(decimal.RequireFromString("45.50")), s.Total().String())
}

func TestUpdateQuantity(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "3"))

	s.UpdateQuantity("a", 4)
	assert.Equal(t, 5, s.Count())

	s.UpdateQuantity("a", -1)
	assert.Equal(t, 4, s.Count())

	s.UpdateQuantity("missing", 3)
	assert.Equal(t, 4, s.Count())
	assert.Len(t, s.Items(), 1)
}

func TestUpdateQuantity_RemovesAtZeroOrBelow(t *testing.T) {
	for _, delta := range []int{-1, -5} {
		s := NewStore()
		s.AddToCart(product("a", "3"))
		s.AddToCart(product("b", "3"))

		s.UpdateQuantity("a", delta)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "b", items[0].ID)
	}
}

func TestUpdateQuantity_SaturatesAtMaxInt(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "1"))
	s.AddToCart(product("a", "1"))

	s.UpdateQuantity("a", math.MaxInt)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, math.MaxInt, items[0].Quantity)

	s.AddToCart(product("a", "1"))
	s.AddToCart(product("b", "1"))
	assert.Equal(t, math.MaxInt, s.Items()[0].Quantity)
	assert.Equal(t, math.MaxInt, s.Count())

	s.UpdateQuantity("a", -1)
	assert.Equal(t, math.MaxInt-1, s.Items()[0].Quantity)
}

func TestSettle(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "1"))
	s.AddToCart(product("b", "2"))
	snap := s.Items()

	s.AddToCart(product("a", "1"))
	s.AddToCart(product("c", "3"))
	s.RemoveFromCart("b")

	s.Settle(snap)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "c", items[1].ID)
}

func TestRemoveFromCart(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "1"))
	s.AddToCart(product("b", "2"))

	s.RemoveFromCart("a")
	s.RemoveFromCart("a")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestClearCartKeepsPanelState(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "1"))
	s.ClearCart()

	assert.Empty(t, s.Items())
	assert.Zero(t, s.Count())
	assert.True(t, s.Total().IsZero())
	assert.True(t, s.IsOpen())

	s.SetOpen(false)
	assert.False(t, s.IsOpen())
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "1"))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Count())
}

func TestSnapshotConsistent(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("a", "2.25"))
	s.UpdateQuantity("a", 1)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Count)
	assert.True(t, snap.Total.Equal(decimal.RequireFromString("4.50")))
	assert.True(t, snap.Open)
	require.Len(t, snap.Items, 1)
	assert.True(t, snap.Items[0].LineTotal().Equal(snap.Total))
}

func TestConcurrentAdds(t *testing.T) {
	s := NewStore()
	p := product("a", "1.10")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddToCart(p)
		}()
	}
	wg.Wait()

	require.Len(t, s.Items(), 1)
	assert.Equal(t, 50, s.Count())
	assert.True(t, s.Total().Equal(decimal.RequireFromString("55")))
}
