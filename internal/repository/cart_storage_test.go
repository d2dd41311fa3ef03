package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	"github.com/nikolayk812/coinvault/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type cartStorageSuite struct {
	suite.Suite

	storage port.CartStorage
	pool    *pgxpool.Pool
}

func TestCartStorageSuite(t *testing.T) {
	suite.Run(t, new(cartStorageSuite))
}

func (suite *cartStorageSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.storage, err = repository.NewCartStorage(suite.pool)
	suite.Require().NoError(err)
}

func (suite *cartStorageSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartStorageSuite) TestSaveAndLoad() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		key       string
		items     []domain.CartItem
		wantError string
	}{
		{
			name:  "save two lines: ok",
			key:   domain.CartNamespace + ":session:" + gofakeit.UUID(),
			items: []domain.CartItem{randomCartItem(), randomCartItem()},
		},
		{
			name:  "save empty cart: ok",
			key:   domain.CartNamespace,
			items: []domain.CartItem{},
		},
		{
			name:      "empty key: error",
			key:       "",
			items:     []domain.CartItem{randomCartItem()},
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.storage.Save(ctx, tt.key, tt.items)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			loaded, err := suite.storage.Load(ctx, tt.key)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.items, loaded, currencyComparer, decimalComparer))
		})
	}
}

func (suite *cartStorageSuite) TestSaveOverwrites() {
	defer suite.deleteAll()
	ctx := suite.T().Context()
	key := domain.CartNamespace + ":user:" + gofakeit.UUID()

	suite.Require().NoError(suite.storage.Save(ctx, key, []domain.CartItem{randomCartItem(), randomCartItem()}))

	latest := []domain.CartItem{randomCartItem()}
	suite.Require().NoError(suite.storage.Save(ctx, key, latest))

	loaded, err := suite.storage.Load(ctx, key)
	suite.Require().NoError(err)
	suite.Empty(cmp.Diff(latest, loaded, currencyComparer, decimalComparer))
}

func (suite *cartStorageSuite) TestLoadUnknownKey() {
	loaded, err := suite.storage.Load(suite.T().Context(), "coin-cart:session:"+gofakeit.UUID())
	suite.Require().NoError(err)
	suite.NotNil(loaded)
	suite.Empty(loaded)
}

func (suite *cartStorageSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_snapshots")
	suite.NoError(err)
}

func randomCartItem() domain.CartItem {
	return domain.CartItem{
		ID:        gofakeit.Int64(),
		Name:      gofakeit.Country() + " " + gofakeit.Noun(),
		Price:     randomMoney(),
		Quantity:  gofakeit.IntRange(1, 10),
		Image:     gofakeit.URL(),
		Condition: string(domain.ConditionFine),
		Year:      gofakeit.IntRange(1700, 2000),
	}
}
