package localstore_test

import (
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/localstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestSaveLoad(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "cart.db")

	store, err := localstore.Open(ctx, path)
	require.NoError(t, err)

	items := []domain.CartItem{randomCartItem(), randomCartItem()}
	require.NoError(t, store.Save(ctx, domain.CartNamespace, items))
	require.NoError(t, store.Close())

	reopened, err := localstore.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, domain.CartNamespace)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(items, loaded, currencyComparer, decimalComparer))

	unknown, err := reopened.Load(ctx, "coin-cart:session:"+gofakeit.UUID())
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestEmptyArguments(t *testing.T) {
	ctx := t.Context()

	_, err := localstore.Open(ctx, "")
	require.EqualError(t, err, "path is empty")

	store, err := localstore.Open(ctx, filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(ctx, "")
	require.EqualError(t, err, "key is empty")

	err = store.Save(ctx, "", nil)
	require.EqualError(t, err, "key is empty")
}

func TestCartSurvivesRestart(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "cart.db")

	store, err := localstore.Open(ctx, path)
	require.NoError(t, err)

	c, err := cart.Open(ctx, store, domain.CartNamespace)
	require.NoError(t, err)

	coin := randomCartItem()
	coin.Quantity = 2
	c.AddItem(ctx, coin)
	c.AddItem(ctx, coin)
	require.NoError(t, store.Close())

	store, err = localstore.Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	restored, err := cart.Open(ctx, store, domain.CartNamespace)
	require.NoError(t, err)

	require.Equal(t, 1, restored.Len())
	assert.Equal(t, 4, restored.ItemCount())
	assert.True(t, coin.Price.Mul(4).Amount.Equal(restored.Total().Amount))
}

var (
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
)

func randomCartItem() domain.CartItem {
	return domain.CartItem{
		ID:   gofakeit.Int64(),
		Name: gofakeit.Country() + " " + gofakeit.Noun(),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 5000)).Round(2),
			Currency: currency.USD,
		},
		Quantity:  gofakeit.IntRange(1, 10),
		Image:     gofakeit.URL(),
		Condition: string(domain.ConditionExcellent),
		Year:      gofakeit.IntRange(1700, 2000),
	}
}
