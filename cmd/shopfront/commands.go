package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/shopfront/internal/account"
	"github.com/aussiebroadwan/shopfront/internal/app"
	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/aussiebroadwan/shopfront/internal/order"
)

func runLogin(ctx context.Context, c *cli, args []string) error {
	var form app.LoginForm
	fs := newFlags("login")
	fs.StringVar(&form.Email, "email", "", "")
	fs.StringVar(&form.Password, "password", "", "")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	claims, err := c.app.Login(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "logged in as %s (%s)\n", claims.Name, claims.Role)
	return nil
}

func runSignup(ctx context.Context, c *cli, args []string) error {
	var form app.SignupForm
	fs := newFlags("signup")
	fs.StringVar(&form.Name, "name", "", "")
	fs.StringVar(&form.Email, "email", "", "")
	fs.StringVar(&form.Password, "password", "", "")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "defaults to -password")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if form.ConfirmPassword == "" {
		form.ConfirmPassword = form.Password
	}

	u, err := c.app.Signup(ctx, form)
	if err != nil {
		return err
	}
	return c.print(u)
}

func runLogout(ctx context.Context, c *cli, _ []string) error {
	return c.app.Logout(ctx)
}

func runWhoami(_ context.Context, c *cli, _ []string) error {
	claims, ok := c.app.Session.CurrentClaims()
	if !ok {
		fmt.Fprintln(c.out, "not logged in")
		return nil
	}
	return c.print(claims)
}

func runGo(_ context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return usageError("go PATH")
	}
	if !c.app.Navigate(args[0]) {
		return fmt.Errorf("%s: not allowed", args[0])
	}
	return nil
}

func runProducts(ctx context.Context, c *cli, args []string) error {
	if len(args) == 1 {
		p, err := c.app.Client.GetProduct(ctx, args[0])
		if err != nil {
			return err
		}
		return c.print(p)
	}
	ps, err := c.app.Client.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range ps {
		fmt.Fprintf(c.out, "%-24s %-20s %8.2f %5d\n", p.Slug, p.Name, p.Price, p.Stock)
	}
	return nil
}

func runCart(ctx context.Context, c *cli, _ []string) error {
	cart, err := c.app.Cart.GetCart(ctx)
	if err != nil {
		return err
	}
	for _, it := range cart.Items {
		fmt.Fprintf(c.out, "%-20s x%-3d %8.2f\n", it.Product.Label(), it.Quantity, it.Total)
	}
	c.printQuote(c.app.Orders.Quote())
	return nil
}

func runAdd(ctx context.Context, c *cli, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("add PRODUCT [QTY]")
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return usageError("QTY must be a number")
		}
		qty = n
	}
	if _, err := c.app.Cart.AddItem(ctx, args[0], qty); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d item(s) in cart\n", c.app.Cart.Count())
	return nil
}

func runDecrease(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return usageError("dec PRODUCT")
	}
	_, err := c.app.Cart.AddItem(ctx, args[0], -1)
	return err
}

func runRemove(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("remove")
	yes := fs.Bool("yes", false, "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError("remove [-yes] PRODUCT")
	}

	t := c.app.Cart.RequestRemove(fs.Arg(0))
	if !c.confirmed(t, *yes) {
		c.app.Cart.Abort(t.ID)
		return nil
	}
	_, err := c.app.Cart.ConfirmRemove(ctx, t.ID)
	return err
}

func runClear(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("clear")
	yes := fs.Bool("yes", false, "")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	t := c.app.Cart.RequestClear()
	if !c.confirmed(t, *yes) {
		c.app.Cart.Abort(t.ID)
		return nil
	}
	_, err := c.app.Cart.ConfirmClear(ctx, t.ID)
	return err
}

func runCheckout(ctx context.Context, c *cli, args []string) error {
	var form order.CheckoutForm
	fs := newFlags("checkout")
	fs.StringVar(&form.Address, "address", "", "")
	fs.StringVar(&form.Phone, "phone", "", "")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	if _, err := c.app.Cart.GetCart(ctx); err != nil {
		return err
	}
	c.printQuote(c.app.Orders.Quote())

	o, err := c.app.Orders.Checkout(ctx, form)
	if err != nil {
		return err
	}
	return c.print(o)
}

func runOrders(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("orders")
	all := fs.Bool("all", false, "every order (admin)")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	load := c.app.Orders.LoadMine
	if *all {
		load = c.app.Orders.LoadAll
	}
	orders, err := load(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Fprintf(c.out, "%s  %-9s %-20s x%-3d %8.2f\n",
			o.ID, order.StatusText(o.Status), o.Product.Label(), o.Quantity, o.TotalPrice)
	}
	return nil
}

func runOrder(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return usageError("order ID")
	}
	o, err := c.app.Orders.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return c.print(o)
}

func runEditOrder(ctx context.Context, c *cli, args []string) error {
	if len(args) < 1 {
		return usageError("edit ID [-address A] [-phone P]")
	}
	var form order.DetailsForm
	fs := newFlags("edit")
	fs.StringVar(&form.Address, "address", "", "")
	fs.StringVar(&form.Phone, "phone", "", "")
	if err := fs.Parse(args[1:]); err != nil {
		return usageError(err.Error())
	}

	o, err := c.app.Orders.UpdateDetails(ctx, args[0], form)
	if err != nil {
		return err
	}
	return c.print(o)
}

func runCancel(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("cancel")
	yes := fs.Bool("yes", false, "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError("cancel [-yes] ID")
	}

	t, err := c.app.Orders.RequestCancel(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !c.confirmed(t, *yes) {
		c.app.Orders.AbortCancel(t.ID)
		return nil
	}
	o, err := c.app.Orders.ConfirmCancel(ctx, t.ID)
	if err != nil {
		return err
	}
	return c.print(o)
}

func runStatus(ctx context.Context, c *cli, args []string) error {
	if len(args) != 2 {
		return usageError("status ID STATUS")
	}
	status, err := order.ParseStatus(args[1])
	if err != nil {
		return err
	}
	o, err := c.app.Orders.SetStatus(ctx, args[0], status)
	if err != nil {
		return err
	}
	return c.print(o)
}

func runOverview(ctx context.Context, c *cli, _ []string) error {
	ov, err := c.app.Orders.Overview(ctx)
	if err != nil {
		return err
	}
	return c.print(ov)
}

func runProfile(ctx context.Context, c *cli, args []string) error {
	var form account.ProfileForm
	fs := newFlags("profile")
	fs.StringVar(&form.Name, "name", "", "")
	fs.StringVar(&form.Email, "email", "", "")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	if form == (account.ProfileForm{}) {
		u, err := c.app.Account.Profile(ctx)
		if err != nil {
			return err
		}
		return c.print(u)
	}
	u, err := c.app.Account.UpdateProfile(ctx, form)
	if err != nil {
		return err
	}
	return c.print(u)
}

func runPassword(ctx context.Context, c *cli, args []string) error {
	var form account.PasswordForm
	fs := newFlags("password")
	fs.StringVar(&form.CurrentPassword, "current", "", "")
	fs.StringVar(&form.NewPassword, "new", "", "")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "defaults to -new")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if form.ConfirmPassword == "" {
		form.ConfirmPassword = form.NewPassword
	}

	msg, err := c.app.Account.ChangePassword(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, msg)
	return nil
}

func runUsers(ctx context.Context, c *cli, args []string) error {
	if len(args) == 1 {
		u, err := c.app.Account.User(ctx, args[0])
		if err != nil {
			return err
		}
		return c.print(u)
	}
	users, err := c.app.Account.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(c.out, "%s  %-6s %-20s %s\n", u.ID, u.Role, u.Name, u.Email)
	}
	return nil
}

func runDeleteUser(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("deluser")
	yes := fs.Bool("yes", false, "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError("deluser [-yes] ID")
	}

	t, err := c.app.Account.RequestDelete(fs.Arg(0))
	if err != nil {
		return err
	}
	if !c.confirmed(t, *yes) {
		c.app.Account.AbortDelete(t.ID)
		return nil
	}
	return c.app.Account.ConfirmDelete(ctx, t.ID)
}

// confirmed reports whether a destructive step may go ahead. Without -yes
// the pending action is only described.
func (c *cli) confirmed(t confirm.Ticket, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintf(c.out, "%s %s: rerun with -yes to confirm\n", t.Action, t.Target)
	return false
}
