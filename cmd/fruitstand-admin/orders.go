package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/domain/model"
	"github.com/skadi15/fruitstand/internal/service"
	"github.com/spf13/cobra"
)

type listOptions struct {
	limit  int
	offset int
	query  string
}

type quantityOptions struct {
	apples  int
	oranges int
}

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and place orders",
	}

	var list listOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored orders as JSON",
		Long: `List stored orders, oldest first.

Use --query to project the result with a JMESPath expression, for example
--query 'orders[?numApples > ` + "`2`" + `].orderId'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withOrders(cmd.Context(), func(ctx context.Context, svc *service.OrderService) error {
				page, err := svc.List(ctx, model.OrderListOptions{Limit: list.limit, Offset: list.offset})
				if err != nil {
					return err
				}
				return printJSON(a.out, page, list.query)
			})
		},
	}
	listCmd.Flags().IntVar(&list.limit, "limit", service.DefaultOrderListLimit, "Maximum number of orders to return")
	listCmd.Flags().IntVar(&list.offset, "offset", 0, "Number of orders to skip")
	listCmd.Flags().StringVar(&list.query, "query", "", "JMESPath expression applied to the output")

	getCmd := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show a single order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q: %w", args[0], err)
			}
			return a.withOrders(cmd.Context(), func(ctx context.Context, svc *service.OrderService) error {
				order, err := svc.Get(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(a.out, order, "")
			})
		},
	}

	var place quantityOptions
	placeCmd := &cobra.Command{
		Use:   "place",
		Short: "Price and store a new order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withOrders(cmd.Context(), func(ctx context.Context, svc *service.OrderService) error {
				order, err := svc.Place(ctx, model.CreateOrderRequest{Apples: place.apples, Oranges: place.oranges})
				if err != nil {
					return err
				}
				return printJSON(a.out, order, "")
			})
		},
	}
	bindQuantityFlags(placeCmd, &place)

	cmd.AddCommand(listCmd, getCmd, placeCmd)
	return cmd
}

func newQuoteCmd(a *app) *cobra.Command {
	var q quantityOptions
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the price breakdown for a basket without storing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withOrders(cmd.Context(), func(_ context.Context, svc *service.OrderService) error {
				quote, err := svc.Quote(q.apples, q.oranges)
				if err != nil {
					return err
				}
				return printJSON(a.out, quote, "")
			})
		},
	}
	bindQuantityFlags(cmd, &q)
	return cmd
}

func bindQuantityFlags(cmd *cobra.Command, q *quantityOptions) {
	cmd.Flags().IntVar(&q.apples, model.ParamApples, 0, "Number of apples")
	cmd.Flags().IntVar(&q.oranges, model.ParamOranges, 0, "Number of oranges")
}

func (a *app) withOrders(ctx context.Context, fn func(context.Context, *service.OrderService) error) (err error) {
	svc, closeFn, err := a.openOrders(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close: %w", cerr))
		}
	}()
	return fn(ctx, svc)
}
