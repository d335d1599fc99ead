package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

type input struct {
	cancel   bool
	side     matching.OrderSide
	price    matching.Uint
	quantity matching.Uint
}

// nolint
func main() {
	var symCount, ordersCount int
	var norm, heavy, multithread bool
	flag.IntVar(&symCount, "s", 3, "Symbols count")
	flag.IntVar(&ordersCount, "i", 5_000_000, "Input orders count")
	flag.BoolVar(&norm, "n", false, "Use normal distribution for price and quantity")
	flag.BoolVar(&heavy, "heavy", false, "Generate heavy sides for orderbook")
	flag.BoolVar(&multithread, "m", true, "Run every order book in its own goroutine")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	handler := &Counter{}
	engine := matching.NewEngine(handler, logger, multithread)

	limits := matching.Limits{
		Min:  matching.NewUint(1).Mul64(matching.UintPrecision).Div64(100),
		Max:  matching.NewUint(100).Mul64(matching.UintPrecision),
		Step: matching.NewUint(1).Mul64(matching.UintPrecision).Div64(100),
	}
	symbols := []string{}
	for i := range symCount {
		name := "SYM" + strconv.Itoa(i+1)
		symbols = append(symbols, name)
		if _, err := engine.AddOrderBook(matching.NewSymbolWithLimits(name, limits, limits)); err != nil {
			logger.Fatal().Err(err).Msg("failed to add order book")
		}
	}

	fmt.Println("prepare input")

	inputs := make([][]input, symCount)
	for i := range symCount {
		inputs[i] = generateInput(ordersCount/symCount, norm, heavy)
	}

	fmt.Println("start execution")

	ctx := context.Background()
	s := time.Now()
	wg := sync.WaitGroup{}
	for i, symbol := range symbols {
		wg.Add(1)
		go func(symbol string, orders []input) {
			defer wg.Done()
			for _, o := range orders {
				if o.cancel {
					engine.Cancel(ctx, symbol, o.side, o.price, o.quantity) //nolint:errcheck
					continue
				}
				engine.Submit(ctx, symbol, o.side, o.price, o.quantity) //nolint:errcheck
			}
		}(symbol, inputs[i])
	}
	wg.Wait()
	engine.Stop(false)
	e := time.Now()

	handler.PrintStatistics()

	rps := float64(ordersCount) * float64(time.Second) / float64(e.Sub(s))

	fmt.Printf("RPS: %.5f\n", rps)
}

func randomFloat(down, up float64, prec int, norm bool) float64 {
	var raw float64
	switch norm {
	case false:
		raw = rand.Float64()*(up-down) + down
	case true:
		std := (up - down) / (2.0 * 5) // range = [-5*std; +5*std]
		mean := (up + down) / 2.0
		raw = rand.NormFloat64()*std + mean
		// cut edges
		if raw < down {
			raw = down
		}
		if raw > up {
			raw = up
		}
	}
	pow := math.Pow10(prec)
	return math.Round(raw*pow) / pow
}

func randomChoice[T any](list []T) T {
	var empty T
	if len(list) == 0 {
		return empty
	}

	return list[rand.IntN(len(list))]
}

func randomUint(down, up float64, norm bool) matching.Uint {
	v, _ := matching.NewUintFromFloatString(strconv.FormatFloat(randomFloat(down, up, 2, norm), 'f', 2, 64))
	return v
}

// generateInput makes orders for a single symbol, every tenth input is a cancel.
func generateInput(ordersCount int, norm, heavy bool) []input {
	inp := make([]input, 0, ordersCount)
	for i := range ordersCount {
		side := randomChoice([]matching.OrderSide{matching.OrderSideBuy, matching.OrderSideSell})
		var price matching.Uint
		switch {
		case heavy && i < ordersCount/2 && side == matching.OrderSideBuy:
			price = randomUint(1, 50, norm)
		case heavy && i < ordersCount/2:
			price = randomUint(51, 100, norm)
		default:
			price = randomUint(1, 100, norm)
		}

		inp = append(inp, input{
			cancel:   rand.IntN(10) == 0,
			side:     side,
			price:    price,
			quantity: randomUint(1, 100, norm),
		})
	}

	return inp
}
