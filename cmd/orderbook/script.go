package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

// refPrice in place of a limit price prices the order with the reference price.
const refPrice = "ref"

var errUsage = errors.New(`usage: buy|sell SYMBOL PRICE|ref QTY, cancel buy|sell SYMBOL PRICE QTY, book SYMBOL [DEPTH], price SYMBOL`)

// Script replays line oriented commands against the engine.
// A failed command is reported to the output and the replay goes on.
type Script struct {
	engine *matching.Engine
	prices matching.PriceSource
	depth  int
	out    io.Writer
}

// Run executes commands until the end of the input. It returns the amount of failed commands.
func (s *Script) Run(ctx context.Context, in io.Reader) (int, error) {
	failed := 0
	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := s.exec(ctx, strings.Fields(text)); err != nil {
			failed++
			fmt.Fprintf(s.out, "line %d: %q: %v\n", line, text, err)
		}
	}
	return failed, scanner.Err()
}

func (s *Script) exec(ctx context.Context, args []string) error {
	switch strings.ToLower(args[0]) {
	case "buy", "sell":
		return s.submit(ctx, args)
	case "cancel":
		return s.cancel(ctx, args)
	case "book":
		return s.book(args)
	case "price":
		return s.price(ctx, args)
	default:
		return errUsage
	}
}

func (s *Script) submit(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	side, err := matching.ParseOrderSide(args[0])
	if err != nil {
		return err
	}
	quantity, err := matching.NewUintFromFloatString(args[3])
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}

	var result matching.SubmitResult
	if strings.EqualFold(args[2], refPrice) {
		result, err = s.engine.SubmitAtReference(ctx, s.prices, args[1], side, quantity)
	} else {
		var price matching.Uint
		if price, err = matching.NewUintFromFloatString(args[2]); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		result, err = s.engine.Submit(ctx, args[1], side, price, quantity)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "order %d %s %s: status=%s executed=%s remaining=%s\n",
		result.OrderID, side, args[1], result.Status(),
		result.Executed().ToFloatString(), result.Remaining.ToFloatString())
	for _, trade := range result.Trades {
		fmt.Fprintf(s.out, "  trade %s buy@%s sell@%s\n",
			trade.Quantity.ToFloatString(), trade.BuyPrice.ToFloatString(), trade.SellPrice.ToFloatString())
	}
	return nil
}

func (s *Script) cancel(ctx context.Context, args []string) error {
	if len(args) != 5 {
		return errUsage
	}
	side, err := matching.ParseOrderSide(args[1])
	if err != nil {
		return err
	}
	price, err := matching.NewUintFromFloatString(args[3])
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	quantity, err := matching.NewUintFromFloatString(args[4])
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}

	cancelled, err := s.engine.Cancel(ctx, args[2], side, price, quantity)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "cancel %s %s@%s: cancelled %s\n", side, args[2], args[3], cancelled.ToFloatString())
	return nil
}

func (s *Script) book(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errUsage
	}
	depth := s.depth
	if len(args) == 3 {
		var err error
		if depth, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("depth: %w", err)
		}
	}
	snapshot, err := s.engine.Snapshot(args[1], depth)
	if err != nil {
		return err
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n", data)
	return nil
}

func (s *Script) price(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	price, err := s.prices.Price(ctx, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "price %s: %s\n", args[1], price.ToFloatString())
	return nil
}
