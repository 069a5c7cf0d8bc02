// Package checkout drives a single card checkout from pre-flight checks to
// a confirmed payment intent.
package checkout

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/classifier"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/retry"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/validator"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/fingerprint"
)

type State string

const (
	StateIdle                 State = "IDLE"
	StateValidating           State = "VALIDATING"
	StateCreatingIntent       State = "CREATING_INTENT"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateSucceeded            State = "SUCCEEDED"
	StateRequiresAction       State = "REQUIRES_ACTION"
	StateFailed               State = "FAILED"
)

// IntentRequester creates payment intents on the server side.
type IntentRequester interface {
	CreateIntent(ctx context.Context, req domain.IntentRequest) (*domain.IntentResult, error)
}

// Confirmer confirms an intent directly with the processor.
type Confirmer interface {
	Loaded() bool
	Confirm(ctx context.Context, clientSecret, paymentMethodID string) (*domain.PaymentIntent, error)
}

type Retrier interface {
	Retry(ctx context.Context, key string) retry.Result
	Clear(key string)
	Attempts(key string) int
	MaxRetries() int
}

type Connectivity interface {
	Online(ctx context.Context) bool
}

// ProgressFunc receives the current state and a 0-100 progress value.
type ProgressFunc func(state State, percent int)

// Checkout is one buyer's payment. ID stays the same across retries.
type Checkout struct {
	ID              string
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID string
	CardComplete    bool
	Metadata        map[string]string
}

type Outcome struct {
	State           State
	PaymentIntentID string
	Error           *apperrors.PaymentError
	Attempt         int
	RetryOffered    bool
	RetryKey        string
}

type Orchestrator struct {
	intents      IntentRequester
	confirmer    Confirmer
	retrier      Retrier
	connectivity Connectivity
	progress     ProgressFunc
	logger       *slog.Logger
}

type Option func(*Orchestrator)

func WithConnectivity(c Connectivity) Option {
	return func(o *Orchestrator) { o.connectivity = c }
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

func NewOrchestrator(intents IntentRequester, confirmer Confirmer, retrier Retrier, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		intents:   intents,
		confirmer: confirmer,
		retrier:   retrier,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run tracks one pass through the flow so progress never goes backwards.
type run struct {
	o       *Orchestrator
	percent int
}

func (r *run) report(state State, percent int) {
	if percent < r.percent {
		percent = r.percent
	}
	r.percent = percent
	if r.o.progress != nil {
		r.o.progress(state, percent)
	}
}

// Pay runs the full flow once. A failed outcome may be retried with Retry.
func (o *Orchestrator) Pay(ctx context.Context, co Checkout) Outcome {
	r := &run{o: o}
	r.report(StateIdle, 0)

	attempt := o.retrier.Attempts(co.ID)
	out := Outcome{Attempt: attempt, RetryKey: co.ID}

	if payErr := o.preflight(ctx, co); payErr != nil {
		return o.fail(ctx, out, payErr)
	}

	r.report(StateValidating, 10)
	if res := validator.ValidateCharge(co.Amount, co.Currency); !res.Valid {
		return o.fail(ctx, out, res.PaymentError())
	}

	r.report(StateCreatingIntent, 20)
	intent, err := o.intents.CreateIntent(ctx, domain.IntentRequest{
		Amount:         co.Amount,
		Currency:       co.Currency,
		Metadata:       o.metadata(co, attempt),
		IdempotencyKey: fingerprint.Compute(co.ID, attempt),
	})
	if err != nil {
		return o.fail(ctx, out, classifier.Classify(err))
	}
	if intent.ClientSecret == "" {
		return o.fail(ctx, out, apperrors.ErrMissingClientSecret())
	}
	out.PaymentIntentID = intent.PaymentIntentID
	r.report(StateCreatingIntent, 60)

	r.report(StateAwaitingConfirmation, 80)
	pi, err := o.confirmer.Confirm(ctx, intent.ClientSecret, co.PaymentMethodID)
	if err != nil {
		return o.fail(ctx, out, classifier.Classify(err))
	}

	switch pi.Status {
	case domain.IntentStatusSucceeded:
		o.retrier.Clear(co.ID)
		out.State = StateSucceeded
		r.report(StateSucceeded, 100)
		o.logger.InfoContext(ctx, "checkout succeeded", "checkout_id", co.ID, "payment_intent_id", pi.ID, "attempt", attempt)
		return out
	case domain.IntentStatusRequiresAction:
		out.State = StateRequiresAction
		out.Error = apperrors.ErrRequiresAction()
		r.report(StateRequiresAction, 100)
		o.logger.InfoContext(ctx, "checkout requires action", "checkout_id", co.ID, "payment_intent_id", pi.ID)
		return out
	default:
		r.report(StateFailed, 100)
		return o.fail(ctx, out, apperrors.ErrUnexpectedStatus().WithDetail("unexpected payment status: "+string(pi.Status)))
	}
}

// Retry consumes one retry for the checkout and restarts the whole flow.
// Outcomes that are not retryable are returned unchanged.
func (o *Orchestrator) Retry(ctx context.Context, co Checkout, previous Outcome) Outcome {
	if previous.State != StateFailed || !previous.RetryOffered {
		return previous
	}

	res := o.retrier.Retry(ctx, co.ID)
	if !res.Success {
		return Outcome{
			State:           StateFailed,
			PaymentIntentID: previous.PaymentIntentID,
			Error:           res.Error,
			Attempt:         res.Attempt,
			RetryKey:        co.ID,
		}
	}
	return o.Pay(ctx, co)
}

func (o *Orchestrator) preflight(ctx context.Context, co Checkout) *apperrors.PaymentError {
	if o.connectivity != nil && !o.connectivity.Online(ctx) {
		return apperrors.ErrOffline()
	}
	if o.confirmer == nil || !o.confirmer.Loaded() {
		return apperrors.ErrStripeNotLoaded()
	}
	if !co.CardComplete || strings.TrimSpace(co.PaymentMethodID) == "" {
		return apperrors.ErrIncompleteCard()
	}
	return nil
}

func (o *Orchestrator) fail(ctx context.Context, out Outcome, payErr *apperrors.PaymentError) Outcome {
	out.State = StateFailed
	out.Error = payErr
	out.RetryOffered = payErr.Retryable && o.retrier.Attempts(out.RetryKey) < o.retrier.MaxRetries()
	o.logger.WarnContext(ctx, "checkout failed",
		"checkout_id", out.RetryKey,
		"code", payErr.Code,
		"type", payErr.Type,
		"retry_offered", out.RetryOffered,
	)
	return out
}

func (o *Orchestrator) metadata(co Checkout, attempt int) map[string]string {
	meta := make(map[string]string, len(co.Metadata)+2)
	for k, v := range co.Metadata {
		meta[k] = v
	}
	meta[domain.MetaCorrelationID] = co.ID
	meta[domain.MetaRetryCount] = strconv.Itoa(attempt)
	return meta
}
