// Command shopfront is a terminal storefront client.
//
//	shopfront login -email casey@shop.test -password secret1
//	shopfront add "Classic Tee" 2
//	shopfront checkout -address "1 Test St" -phone "0412 345 678"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/aussiebroadwan/shopfront/internal/app"
	"github.com/aussiebroadwan/shopfront/internal/nav"
)

type command struct {
	usage string
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"login":    {"-email E -password P", runLogin},
	"signup":   {"-name N -email E -password P", runSignup},
	"logout":   {"", runLogout},
	"whoami":   {"", runWhoami},
	"go":       {"PATH", runGo},
	"products": {"[SLUG]", runProducts},
	"cart":     {"", runCart},
	"add":      {"PRODUCT [QTY]", runAdd},
	"dec":      {"PRODUCT", runDecrease},
	"remove":   {"[-yes] PRODUCT", runRemove},
	"clear":    {"[-yes]", runClear},
	"checkout": {"-address A -phone P", runCheckout},
	"orders":   {"[-all]", runOrders},
	"order":    {"ID", runOrder},
	"edit":     {"ID [-address A] [-phone P]", runEditOrder},
	"cancel":   {"[-yes] ID", runCancel},
	"status":   {"ID STATUS", runStatus},
	"overview": {"", runOverview},
	"profile":  {"[-name N] [-email E]", runProfile},
	"password": {"-current C -new N", runPassword},
	"users":    {"[ID]", runUsers},
	"deluser":  {"[-yes] ID", runDeleteUser},
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fatal(err)
	}

	c := &cli{out: os.Stdout, errOut: os.Stderr}
	application, err := app.New(cfg,
		app.WithNavigator(nav.NavigatorFunc(c.navigated)),
		app.WithNotifier(c),
	)
	if err != nil {
		fatal(err)
	}
	c.app = application

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, c, cmd, os.Args[2:])
	stop()
	if cerr := application.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, c *cli, cmd command, args []string) error {
	if err := c.app.Bootstrap(ctx); err != nil {
		return err
	}
	return cmd.run(ctx, c, args)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: shopfront <command> [args]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].usage)
	}
}

func fatal(err error) {
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(os.Stderr, "shopfront: %s\n", ue)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "shopfront: %v\n", err)
	os.Exit(1)
}

type usageError string

func (e usageError) Error() string { return string(e) }

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
