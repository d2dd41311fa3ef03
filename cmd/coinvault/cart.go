package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/localstore"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	addImage     string
	addCondition string
	addYear      int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local cart",
	Long: `The local cart lives in a SQLite file (cart.local_db / COINVAULT_CART_DB)
and survives restarts.`,
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cart lines and total",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd.Context(), func(store *cart.Store) error {
			return printCart(cmd.OutOrStdout(), store)
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add ID NAME PRICE [QUANTITY]",
	Short: "Add a product line; an existing line only gains quantity",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		unit, err := cfg.CurrencyUnit()
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(args[2])
		if err != nil || price.IsNegative() {
			return fmt.Errorf("price[%s] is not a valid amount", args[2])
		}
		quantity := 1
		if len(args) == 4 {
			if quantity, err = parseQuantity(args[3]); err != nil {
				return err
			}
		}

		item := domain.CartItem{
			ID:        id,
			Name:      args[1],
			Price:     domain.NewMoney(price, unit),
			Quantity:  quantity,
			Image:     addImage,
			Condition: addCondition,
			Year:      addYear,
		}

		return withCart(cmd.Context(), func(store *cart.Store) error {
			store.AddItem(cmd.Context(), item)
			return printCart(cmd.OutOrStdout(), store)
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a product line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		return withCart(cmd.Context(), func(store *cart.Store) error {
			store.RemoveItem(cmd.Context(), id)
			return printCart(cmd.OutOrStdout(), store)
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set ID QUANTITY",
	Short: "Set the quantity of a line; 0 removes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity[%s] is not a number", args[1])
		}
		if quantity > domain.MaxQuantity {
			return fmt.Errorf("quantity[%d] exceeds %d", quantity, domain.MaxQuantity)
		}

		return withCart(cmd.Context(), func(store *cart.Store) error {
			store.UpdateQuantity(cmd.Context(), id, quantity)
			return printCart(cmd.OutOrStdout(), store)
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd.Context(), func(store *cart.Store) error {
			store.Clear(cmd.Context())
			return printCart(cmd.OutOrStdout(), store)
		})
	},
}

func init() {
	cartAddCmd.Flags().StringVar(&addImage, "image", "", "Image URL")
	cartAddCmd.Flags().StringVar(&addCondition, "condition", "", "Grade, e.g. Very Good")
	cartAddCmd.Flags().IntVar(&addYear, "year", 0, "Mint year, negative for BC")

	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func withCart(ctx context.Context, fn func(store *cart.Store) error) (err error) {
	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return err
	}

	local, err := localstore.Open(ctx, cfg.Cart.LocalDB)
	if err != nil {
		return fmt.Errorf("localstore.Open: %w", err)
	}
	defer func() {
		if closeErr := local.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("local.Close: %w", closeErr)
		}
	}()

	store, err := cart.Open(ctx, local, domain.CartNamespace, cart.WithLogger(logger.Named("cart")), cart.WithCurrency(unit))
	if err != nil {
		return fmt.Errorf("cart.Open: %w", err)
	}

	return fn(store)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#4CAF50"))
)

func printCart(w io.Writer, store *cart.Store) error {
	p := message.NewPrinter(language.English)

	items := store.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "QTY", "PRICE", "SUBTOTAL")
	for _, item := range items {
		t.Row(
			strconv.FormatInt(item.ID, 10),
			item.Name,
			strconv.Itoa(item.Quantity),
			formatMoney(p, item.Price),
			formatMoney(p, item.Subtotal()),
		)
	}
	t.Row("", "TOTAL", strconv.Itoa(store.ItemCount()), "", formatMoney(p, store.Total()))

	last := len(items)
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch row {
		case table.HeaderRow:
			return headerStyle
		case last:
			return totalStyle
		default:
			return cellStyle
		}
	})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatMoney(p *message.Printer, m domain.Money) string {
	return p.Sprint(currency.Symbol(m.Currency.Amount(m.Amount.InexactFloat64())))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id[%s] is not a valid product id", raw)
	}
	return id, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("quantity[%s] is not a number", raw)
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}
