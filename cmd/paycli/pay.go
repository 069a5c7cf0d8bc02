package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/checkout"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/retry"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/httpclient"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/processor"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/stripeapi"
)

type payFlags struct {
	amount         string
	currency       string
	paymentMethod  string
	checkoutID     string
	publishableKey string
	simulate       bool
	autoRetry      bool
}

func payCmd(g *globalFlags) *cobra.Command {
	f := &payFlags{}

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Run one checkout through intent creation and confirmation",
		Long: `Run one checkout the way the storefront does: pre-flight checks, amount
validation, intent creation on the server, then confirmation with the
publishable key. Retryable failures are retried when --auto-retry is set.

Test payment methods: pm_card_visa, pm_card_chargeDeclined,
pm_card_chargeDeclinedInsufficientFunds, pm_card_authenticationRequired.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPay(cmd, g, f)
		},
	}

	cmd.Flags().StringVarP(&f.amount, "amount", "a", "500000", "Amount in major units")
	cmd.Flags().StringVarP(&f.currency, "currency", "c", "vnd", "Currency")
	cmd.Flags().StringVarP(&f.paymentMethod, "payment-method", "m", "pm_card_visa", "Payment method id")
	cmd.Flags().StringVar(&f.checkoutID, "checkout-id", "", "Checkout id, stable across retries (random when empty)")
	cmd.Flags().StringVar(&f.publishableKey, "publishable-key", os.Getenv("STRIPE_PUBLISHABLE_KEY"), "Publishable key used for confirmation")
	cmd.Flags().BoolVar(&f.simulate, "simulate", false, "Run against the in-process card simulator instead of a server")
	cmd.Flags().BoolVar(&f.autoRetry, "auto-retry", false, "Retry retryable failures until the retry budget runs out")

	return cmd
}

func newPayOrchestrator(g *globalFlags, f *payFlags, out io.Writer, log *slog.Logger) *checkout.Orchestrator {
	progress := checkout.WithProgress(func(state checkout.State, percent int) {
		fmt.Fprintf(out, "  [%3d%%] %s\n", percent, state)
	})
	retrier := retry.NewCoordinator(retry.Config{})

	if f.simulate {
		sim := processor.NewSimulator(0)
		return checkout.NewOrchestrator(
			stripeapi.NewGatewayWith("sk_test_simulator", sim, sim, log),
			stripeapi.NewConfirmerWith("pk_test_simulator", sim, log),
			retrier, log, progress,
		)
	}

	client := httpclient.New(g.server, httpclient.WithLanguage(g.lang))
	return checkout.NewOrchestrator(
		client,
		stripeapi.NewConfirmer(f.publishableKey, log),
		retrier, log, progress, checkout.WithConnectivity(client),
	)
}

func runPay(cmd *cobra.Command, g *globalFlags, f *payFlags) error {
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", f.amount, err)
	}
	if f.checkoutID == "" {
		f.checkoutID = "chk_" + uuid.NewString()
	}

	out := cmd.OutOrStdout()
	orch := newPayOrchestrator(g, f, out, g.logger())
	co := checkout.Checkout{
		ID:              f.checkoutID,
		Amount:          amount,
		Currency:        f.currency,
		PaymentMethodID: f.paymentMethod,
		CardComplete:    true,
	}

	fmt.Fprintf(out, "Checkout %s: %s %s\n", co.ID, stripeapi.DisplayAmount(amount), f.currency)
	outcome := orch.Pay(cmd.Context(), co)
	for f.autoRetry && outcome.State == checkout.StateFailed && outcome.RetryOffered {
		printOutcome(out, g.lang, outcome)
		fmt.Fprintln(out, "Retrying...")
		outcome = orch.Retry(cmd.Context(), co, outcome)
	}
	printOutcome(out, g.lang, outcome)

	if outcome.State == checkout.StateFailed {
		return fmt.Errorf("checkout %s failed with %s", co.ID, outcome.Error.Code)
	}
	return nil
}

func printOutcome(w io.Writer, lang string, o checkout.Outcome) {
	fmt.Fprintf(w, "State:    %s\n", o.State)
	if o.PaymentIntentID != "" {
		fmt.Fprintf(w, "Intent:   %s\n", o.PaymentIntentID)
	}
	fmt.Fprintf(w, "Attempt:  %d\n", o.Attempt)
	if o.Error == nil {
		return
	}
	e := o.Error.Localize(lang)
	fmt.Fprintf(w, "Error:    %s (%s)\n", e.Message, e.Code)
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	if o.RetryOffered {
		fmt.Fprintln(w, "Retry:    available")
	}
}
