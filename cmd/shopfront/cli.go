package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aussiebroadwan/shopfront/internal/app"
	"github.com/aussiebroadwan/shopfront/internal/order"
)

// cli renders results and global effects to the terminal.
type cli struct {
	app    *app.Application
	out    io.Writer
	errOut io.Writer
}

func (c *cli) navigated(path string) {
	fmt.Fprintf(c.errOut, "-> %s\n", path)
}

func (c *cli) Notify(msg string) {
	fmt.Fprintf(c.errOut, "! %s\n", msg)
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printQuote(q order.Quote) {
	fmt.Fprintf(c.out, "subtotal %8.2f\nshipping %8.2f\ntax      %8.2f\ntotal    %8.2f\n",
		q.Subtotal, q.Shipping, q.Tax, q.Total)
}
