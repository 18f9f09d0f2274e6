package domain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, price string) Item {
	return Item{ProductID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), Category: "Vêtements"}
}

func dispatchAll(state State, actions ...Action) State {
	for _, a := range actions {
		state = Reduce(state, a)
	}
	return state
}

func assertConsistent(t *testing.T, s State) {
	t.Helper()
	total := decimal.Zero
	count := 0
	for _, it := range s.Items {
		require.Greater(t, it.Quantity, 0, "line %s has non-positive quantity", it.ProductID)
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	assert.True(t, total.Equal(s.Total), "total %s != %s", s.Total, total)
	assert.Equal(t, count, s.ItemCount)
}

func TestReduce_AddItemDeduplicatesByVariant(t *testing.T) {
	robe := item("robe", "39.90")

	s := Empty()
	for i := 0; i < 4; i++ {
		s = Reduce(s, AddItem{Item: robe, Color: "Rouge", Size: "M"})
	}

	require.Len(t, s.Items, 1)
	assert.Equal(t, 4, s.Items[0].Quantity)
	assert.Equal(t, "Rouge", s.Items[0].SelectedColor)
	assert.Equal(t, "M", s.Items[0].SelectedSize)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("159.60")))
	assertConsistent(t, s)
}

func TestReduce_AddItemDistinctVariantsGetOwnLines(t *testing.T) {
	robe := item("robe", "10.00")

	s := dispatchAll(Empty(),
		AddItem{Item: robe, Color: "Rouge", Size: "M"},
		AddItem{Item: robe, Color: "Bleu", Size: "M"},
		AddItem{Item: robe, Color: "Rouge", Size: "L"},
		AddItem{Item: robe},
	)

	assert.Len(t, s.Items, 4)
	assert.Equal(t, 4, s.ItemCount)
	assertConsistent(t, s)
}

func TestReduce_AddItemIgnoresIncomingQuantity(t *testing.T) {
	it := item("a", "5")
	it.Quantity = 12

	s := Reduce(Empty(), AddItem{Item: it})
	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestReduce_UpdateQuantity(t *testing.T) {
	s := dispatchAll(Empty(),
		AddItem{Item: item("a", "2.50")},
		AddItem{Item: item("b", "1.25")},
	)

	s = Reduce(s, UpdateQuantity{ProductID: "a", Quantity: 3})
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("8.75")))

	t.Run("unknown id is a no-op", func(t *testing.T) {
		next := Reduce(s, UpdateQuantity{ProductID: "zzz", Quantity: 9})
		assert.Equal(t, s, next)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		next := Reduce(s, UpdateQuantity{ProductID: "a", Quantity: 0})
		require.Len(t, next.Items, 1)
		assert.Equal(t, "b", next.Items[0].ProductID)
		assertConsistent(t, next)
	})

	t.Run("negative removes the line", func(t *testing.T) {
		next := Reduce(s, UpdateQuantity{ProductID: "b", Quantity: -4})
		require.Len(t, next.Items, 1)
		assert.Equal(t, "a", next.Items[0].ProductID)
	})
}

func TestReduce_VariantTargeting(t *testing.T) {
	tee := item("tee", "15")
	s := dispatchAll(Empty(),
		AddItem{Item: tee, Color: "Noir", Size: "S"},
		AddItem{Item: tee, Color: "Blanc", Size: "S"},
	)

	s = Reduce(s, UpdateQuantity{ProductID: "tee", Quantity: 5, Variant: &Variant{Color: "Blanc", Size: "S"}})
	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.Equal(t, 5, s.Items[1].Quantity)

	s = Reduce(s, RemoveItem{ProductID: "tee"})
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Blanc", s.Items[0].SelectedColor)

	s = Reduce(s, RemoveItem{ProductID: "tee", Variant: &Variant{Color: "Noir", Size: "S"}})
	assert.Len(t, s.Items, 1)
	assertConsistent(t, s)
}

func TestReduce_ClearCart(t *testing.T) {
	s := dispatchAll(Empty(), AddItem{Item: item("a", "9.99")}, AddItem{Item: item("b", "1")})
	s = Reduce(s, ClearCart{})

	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.Equal(t, 0, s.ItemCount)
	assert.True(t, s.Total.IsZero())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := dispatchAll(Empty(), AddItem{Item: item("a", "1")}, AddItem{Item: item("b", "1")})
	snapshot := append([]Item(nil), before.Items...)

	_ = Reduce(before, AddItem{Item: item("a", "1")})
	_ = Reduce(before, UpdateQuantity{ProductID: "b", Quantity: 7})
	_ = Reduce(before, RemoveItem{ProductID: "a"})

	assert.Equal(t, snapshot, before.Items)
}

func TestReduce_HydrateNormalizes(t *testing.T) {
	restored := State{
		Items: []Item{
			{ProductID: "a", Price: decimal.RequireFromString("3.00"), Quantity: 2},
			{ProductID: "b", Price: decimal.RequireFromString("1.00"), Quantity: 0},
			{ProductID: "", Price: decimal.RequireFromString("1.00"), Quantity: 1},
		},
		Total:     decimal.RequireFromString("999"),
		ItemCount: 42,
	}

	s := Reduce(Empty(), Hydrate{State: restored})
	require.Len(t, s.Items, 1)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("6.00")))
	assert.Equal(t, 2, s.ItemCount)
}

func TestReduce_HydrateMergesRepeatedLines(t *testing.T) {
	restored := State{Items: []Item{
		{ProductID: "a", Price: decimal.RequireFromString("3.00"), Quantity: 2, SelectedSize: "M"},
		{ProductID: "b", Price: decimal.RequireFromString("1.00"), Quantity: 1},
		{ProductID: "a", Price: decimal.RequireFromString("3.00"), Quantity: 1, SelectedSize: "M"},
		{ProductID: "a", Price: decimal.RequireFromString("3.00"), Quantity: 4, SelectedSize: "L"},
	}}

	s := Reduce(Empty(), Hydrate{State: restored})
	require.Len(t, s.Items, 3)
	assert.Equal(t, "M", s.Items[0].SelectedSize)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.Equal(t, "b", s.Items[1].ProductID)
	assert.Equal(t, 4, s.Items[2].Quantity)
	assertConsistent(t, s)

	s = Reduce(s, RemoveItem{ProductID: "a", Variant: &Variant{Size: "M"}})
	require.Len(t, s.Items, 2)
	assert.Equal(t, 5, s.ItemCount)
}

func TestReduce_TotalNeverDrifts(t *testing.T) {
	prices := []string{"0.10", "0.20", "19.99", "4.99", "100.01"}
	rng := rand.New(rand.NewSource(7))

	s := Empty()
	for i := 0; i < 2000; i++ {
		id := string(rune('a' + rng.Intn(len(prices))))
		it := item(id, prices[int(id[0]-'a')])
		switch rng.Intn(5) {
		case 0, 1:
			s = Reduce(s, AddItem{Item: it, Size: []string{"", "M"}[rng.Intn(2)]})
		case 2:
			s = Reduce(s, UpdateQuantity{ProductID: id, Quantity: rng.Intn(6) - 1})
		case 3:
			s = Reduce(s, RemoveItem{ProductID: id})
		case 4:
			if rng.Intn(50) == 0 {
				s = Reduce(s, ClearCart{})
			}
		}
		assertConsistent(t, s)
	}
}
