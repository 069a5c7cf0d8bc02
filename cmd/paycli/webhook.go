package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stripe/stripe-go/v74"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/stripeapi"
)

type webhookFlags struct {
	secret    string
	eventID   string
	eventType string
	intentID  string
	dryRun    bool
}

type eventPayload struct {
	ID         string `json:"id"`
	Object     string `json:"object"`
	APIVersion string `json:"api_version"`
	Created    int64  `json:"created"`
	Type       string `json:"type"`
	Data       struct {
		Object struct {
			ID     string `json:"id"`
			Object string `json:"object"`
			Status string `json:"status"`
		} `json:"object"`
	} `json:"data"`
}

var intentStatusByEvent = map[string]string{
	"payment_intent.succeeded":       "succeeded",
	"payment_intent.payment_failed":  "requires_payment_method",
	"payment_intent.canceled":        "canceled",
	"payment_intent.requires_action": "requires_action",
}

func signWebhookCmd(g *globalFlags) *cobra.Command {
	f := &webhookFlags{}

	cmd := &cobra.Command{
		Use:   "sign-webhook",
		Short: "Build a signed payment_intent event and deliver it to the webhook endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignWebhook(cmd, g, f)
		},
	}

	cmd.Flags().StringVar(&f.secret, "secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Webhook signing secret")
	cmd.Flags().StringVar(&f.eventID, "event-id", "", "Event id (random when empty)")
	cmd.Flags().StringVarP(&f.eventType, "type", "t", "payment_intent.succeeded", "Event type")
	cmd.Flags().StringVarP(&f.intentID, "intent", "i", "", "Payment intent id the event refers to")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Only print the signature header and body")
	_ = cmd.MarkFlagRequired("intent")

	return cmd
}

func buildEvent(f *webhookFlags, now time.Time) ([]byte, error) {
	status, ok := intentStatusByEvent[f.eventType]
	if !ok {
		status = "requires_payment_method"
	}
	if f.eventID == "" {
		f.eventID = "evt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	var p eventPayload
	p.ID = f.eventID
	p.Object = "event"
	p.APIVersion = stripe.APIVersion
	p.Created = now.Unix()
	p.Type = f.eventType
	p.Data.Object.ID = f.intentID
	p.Data.Object.Object = "payment_intent"
	p.Data.Object.Status = status
	return json.Marshal(p)
}

func runSignWebhook(cmd *cobra.Command, g *globalFlags, f *webhookFlags) error {
	if f.secret == "" {
		return fmt.Errorf("secret not provided and STRIPE_WEBHOOK_SECRET not set")
	}

	now := time.Now()
	body, err := buildEvent(f, now)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	header := stripeapi.SignPayload(body, f.secret, now)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stripe-Signature: %s\n", header)
	fmt.Fprintf(out, "Body: %s\n", body)
	if f.dryRun {
		fmt.Fprintln(out, "\n[DRY RUN] Not sending request")
		return nil
	}

	url := strings.TrimRight(g.server, "/") + "/payment/webhook"
	fmt.Fprintf(out, "\nSending to %s...\n", url)
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)
	req.Header.Set("Accept-Language", g.lang)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Fprintf(out, "Response: %d %s\n", resp.StatusCode, respBody)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook rejected with status %d", resp.StatusCode)
	}
	return nil
}
