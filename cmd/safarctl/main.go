// safarctl drives the marketplace flows from a terminal: list trips, book a
// seat, check the owner balance, request a withdrawal, and work the admin
// approval queue. It talks to a running safarpay backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"safarpay/internal/client"
	"safarpay/internal/config"
	"safarpay/internal/utils"
	"safarpay/internal/waafipay"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	env := config.LoadEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "trips":
		err = cmdTrips(ctx, env, os.Args[2:])
	case "book":
		err = cmdBook(ctx, env, os.Args[2:])
	case "balance":
		err = cmdBalance(ctx, env, os.Args[2:])
	case "request":
		err = cmdRequest(ctx, env, os.Args[2:])
	case "approvals":
		err = cmdApprovals(ctx, env, os.Args[2:])
	case "approve":
		err = cmdApprove(ctx, env, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: safarctl <command> [flags]

commands:
  trips      list bookable trips
  book       pay for and register a booking
  balance    show the owner's pending balance and history
  request    request a withdrawal of the full pending balance
  approvals  list settlement requests awaiting approval
  approve    approve one settlement request`)
}

func apiFlags(fs *flag.FlagSet) (api, token *string) {
	api = fs.String("api", envOr("SAFARPAY_API", "http://localhost:8080/api"), "backend base URL")
	token = fs.String("token", os.Getenv("SAFARPAY_TOKEN"), "bearer token")
	return api, token
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func cmdTrips(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("trips", flag.ExitOnError)
	api, token := apiFlags(fs)
	fs.Parse(args)

	flow := client.NewBookingFlow(client.New(*api, *token), nil, "")
	if err := flow.LoadTrips(ctx); err != nil {
		return err
	}
	if len(flow.Options) == 0 {
		fmt.Println("no trips with seats available")
		return nil
	}
	for _, opt := range flow.Options {
		fmt.Printf("%4d  %s\n", opt.Value, opt.Label)
	}
	return nil
}

func cmdBook(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	api, token := apiFlags(fs)
	tripID := fs.Int64("trip", 0, "trip id")
	seats := fs.String("seats", "", "number of seats")
	phone := fs.String("phone", os.Getenv("SAFARPAY_PHONE"), "payer wallet number")
	fs.Parse(args)

	gateway := waafipay.New(waafipay.Config{
		URL:         env.WaafiURL,
		MerchantUID: env.WaafiMerchantUID,
		APIUserID:   env.WaafiAPIUserID,
		APIKey:      env.WaafiAPIKey,
	})
	flow := client.NewBookingFlow(client.New(*api, *token), gateway, *phone)
	if err := flow.LoadTrips(ctx); err != nil {
		return err
	}

	flow.TripID = *tripID
	flow.Seats = *seats
	fmt.Printf("total: %s\n", utils.FormatUSD(flow.Total()))

	res, err := flow.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("booked: booking %d, paid %s (fee %s, owner %s), transaction %s\n",
		res.BookingID, utils.FormatUSD(res.Total), utils.FormatUSD(res.SystemFee),
		utils.FormatUSD(res.OwnerEarnings), res.TransactionID)
	return nil
}

func cmdBalance(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	api, token := apiFlags(fs)
	fs.Parse(args)

	flow := client.NewSettlementFlow(client.New(*api, *token))
	if err := flow.Refresh(ctx); err != nil {
		return err
	}
	fmt.Printf("pending balance: %s\n", utils.FormatUSD(flow.PendingBalance))
	if len(flow.History) == 0 {
		fmt.Println("no settlement history")
		return nil
	}
	for _, s := range flow.History {
		fmt.Printf("%4d  %-10s %-12s %s  %s\n",
			s.ID, s.Status, utils.PaymentMethodLabel(s.PaymentMethod),
			utils.FormatUSD(s.Amount), s.RequestedAt)
	}
	return nil
}

func cmdRequest(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("request", flag.ExitOnError)
	api, token := apiFlags(fs)
	method := fs.String("method", "evcplus", "payout method: evcplus or bank")
	fs.Parse(args)

	flow := client.NewSettlementFlow(client.New(*api, *token))
	if err := flow.Refresh(ctx); err != nil {
		return err
	}
	amount, err := flow.RequestWithdrawal(ctx, *method)
	if err != nil {
		return err
	}
	fmt.Printf("withdrawal of %s requested via %s to %s\n",
		utils.FormatUSD(amount), utils.PaymentMethodLabel(*method), flow.Destination(*method))
	return nil
}

func cmdApprovals(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("approvals", flag.ExitOnError)
	api, token := apiFlags(fs)
	fs.Parse(args)

	session := client.NewApprovalSession(client.New(*api, *token))
	if err := session.Load(ctx); err != nil {
		return err
	}
	items := session.Items()
	if len(items) == 0 {
		fmt.Println("no settlements awaiting approval")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%4d  %-20s %-12s %s  %d booking(s)  %s\n",
			it.ID, it.OwnerName, it.MethodLabel, utils.FormatUSD(it.Amount),
			it.BookingCount, it.RequestedAt)
	}
	return nil
}

func cmdApprove(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	api, token := apiFlags(fs)
	id := fs.String("id", "", "settlement id")
	ref := fs.String("ref", "", "payout transaction reference")
	notes := fs.String("notes", "", "optional admin notes")
	fs.Parse(args)

	settlementID, err := strconv.ParseInt(*id, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid settlement id %q", *id)
	}

	session := client.NewApprovalSession(client.New(*api, *token))
	if err := session.Load(ctx); err != nil {
		return err
	}
	if err := session.Open(settlementID); err != nil {
		return err
	}
	session.TransactionRef = *ref
	session.AdminNotes = *notes
	if err := session.Confirm(ctx); err != nil {
		return err
	}
	fmt.Printf("settlement %d approved\n", settlementID)
	return nil
}
