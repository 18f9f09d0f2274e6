package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func fixture() []Product {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID: "robe", Name: "Robe d'été fleurie", Category: "Vêtements", Description: "Légère",
			Price: price("49.90"), OriginalPrice: decimal.NewNullDecimal(price("69.90")),
			StockQuantity: 4, Rating: floatPtr(4.6), ReviewCount: intPtr(120),
			Colors: []string{"Rouge", "Bleu"}, Sizes: []string{"S", "M"}, CreatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: "sac", Name: "Sac à main", Category: "Accessoires", Description: "Cuir véritable",
			Price: price("89.00"), StockQuantity: 0, Rating: floatPtr(3.9), ReviewCount: intPtr(15),
			Colors: []string{"Noir"}, CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "sneakers", Name: "Sneakers urbaines", Category: "Chaussures", Description: "Semelle en robe de caoutchouc",
			Price: price("59.00"), OriginalPrice: decimal.NewNullDecimal(price("59.00")),
			StockQuantity: 12, Rating: floatPtr(4.1), ReviewCount: intPtr(300),
			Sizes: []string{"40", "41", "42"}, CreatedAt: base,
		},
		{
			ID: "bague", Name: "Bague argent", Category: "Bijoux",
			Price: price("25.00"), StockQuantity: 2,
		},
		{
			ID: "echarpe", Name: "Écharpe laine", Category: "Accessoires",
			Price: price("19.99"), OriginalPrice: decimal.NewNullDecimal(price("29.99")),
			StockQuantity: 7, Rating: floatPtr(5), ReviewCount: intPtr(8),
			Colors: []string{"Bleu"}, CreatedAt: base.Add(72 * time.Hour),
		},
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(fixture(), Filters{Search: "ROBE", Sort: SortName})

	assert.Equal(t, []string{"robe", "sneakers"}, ids(got))
}

func TestApply_SearchMissesUnrelated(t *testing.T) {
	products := []Product{
		{ID: "robe", Name: "Robe d'été fleurie", Category: "Vêtements"},
		{ID: "sac", Name: "Sac à main", Category: "Accessoires"},
	}
	got := Apply(products, Filters{Search: "robe"})
	assert.Equal(t, []string{"robe"}, ids(got))
}

func TestApply_Category(t *testing.T) {
	got := Apply(fixture(), Filters{Category: "Accessoires", Sort: SortName})
	assert.Equal(t, []string{"echarpe", "sac"}, ids(got))

	all := Apply(fixture(), Filters{Category: CategoryAll})
	assert.Len(t, all, 5)
}

func TestApply_PriceBoundsInclusive(t *testing.T) {
	got := Apply(fixture(), Filters{MinPrice: pricePtr("25.00"), MaxPrice: pricePtr("59.00"), Sort: SortPriceAsc})
	assert.Equal(t, []string{"bague", "robe", "sneakers"}, ids(got))

	onlyMax := Apply(fixture(), Filters{MaxPrice: pricePtr("20"), Sort: SortPriceAsc})
	assert.Equal(t, []string{"echarpe"}, ids(onlyMax))

	t.Run("inverted bounds yield nothing", func(t *testing.T) {
		got := Apply(fixture(), Filters{MinPrice: pricePtr("80"), MaxPrice: pricePtr("10")})
		assert.Empty(t, got)
	})
}

func TestApply_StockSaleRating(t *testing.T) {
	inStock := Apply(fixture(), Filters{InStock: true})
	assert.NotContains(t, ids(inStock), "sac")
	assert.Len(t, inStock, 4)

	onSale := Apply(fixture(), Filters{OnSale: true, Sort: SortPriceAsc})
	assert.Equal(t, []string{"echarpe", "robe"}, ids(onSale), "equal original price is not a sale")

	rated := Apply(fixture(), Filters{Rating: 4, Sort: SortRating})
	assert.Equal(t, []string{"echarpe", "robe", "sneakers"}, ids(rated), "missing rating counts as 0")
}

func TestApply_ColorAndSizeIntersect(t *testing.T) {
	blue := Apply(fixture(), Filters{Colors: []string{"Bleu", "Vert"}, Sort: SortPriceAsc})
	assert.Equal(t, []string{"echarpe", "robe"}, ids(blue))

	sized := Apply(fixture(), Filters{Sizes: []string{"M", "42"}, Sort: SortPriceAsc})
	assert.Equal(t, []string{"robe", "sneakers"}, ids(sized))
}

func TestApply_FacetsAreConjunctive(t *testing.T) {
	got := Apply(fixture(), Filters{
		Category: "Accessoires",
		InStock:  true,
		OnSale:   true,
		Colors:   []string{"Bleu"},
	})
	assert.Equal(t, []string{"echarpe"}, ids(got))
}

func TestApply_Sorts(t *testing.T) {
	tests := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{"newest with missing timestamp last", SortNewest, []string{"echarpe", "robe", "sac", "sneakers", "bague"}},
		{"default is newest", "", []string{"echarpe", "robe", "sac", "sneakers", "bague"}},
		{"price ascending", SortPriceAsc, []string{"echarpe", "bague", "robe", "sneakers", "sac"}},
		{"price descending", SortPriceDesc, []string{"sac", "sneakers", "robe", "bague", "echarpe"}},
		{"popularity", SortPopularity, []string{"sneakers", "robe", "sac", "echarpe", "bague"}},
		{"rating", SortRating, []string{"echarpe", "robe", "sneakers", "sac", "bague"}},
		{"name is locale aware", SortName, []string{"bague", "echarpe", "robe", "sac", "sneakers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(fixture(), Filters{Sort: tt.order})))
		})
	}
}

func TestApply_PriceTiesKeepAHighestLast(t *testing.T) {
	products := []Product{
		{ID: "A", Price: price("10")},
		{ID: "B", Price: price("5")},
		{ID: "C", Price: price("5")},
	}
	got := ids(Apply(products, Filters{Sort: SortPriceAsc}))

	require.Len(t, got, 3)
	assert.Equal(t, "A", got[2])
	assert.ElementsMatch(t, []string{"B", "C"}, got[:2])
}

func TestApply_Deterministic(t *testing.T) {
	products := fixture()
	f := Filters{Search: "e", InStock: true, Sort: SortRating}

	first := Apply(products, f)
	second := Apply(products, f)
	assert.Equal(t, first, second)
	assert.Equal(t, fixture(), products, "input must not be reordered")
}

func TestEngine_Locale(t *testing.T) {
	products := []Product{{ID: "z", Name: "Zèbre"}, {ID: "e", Name: "élan"}, {ID: "a", Name: "Arbre"}}

	got := NewEngine(language.English).Apply(products, Filters{Sort: SortName})
	assert.Equal(t, []string{"a", "e", "z"}, ids(got))
}
