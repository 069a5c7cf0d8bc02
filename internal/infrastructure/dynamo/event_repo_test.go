package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

func newTestEvent(id, intentID string, outcome domain.WebhookOutcome, received time.Time) *domain.WebhookEvent {
	return &domain.WebhookEvent{
		EventID:         id,
		EventType:       "payment_intent.succeeded",
		PaymentIntentID: intentID,
		Payload:         []byte(`{"id":"` + id + `"}`),
		Outcome:         outcome,
		ReceivedAt:      received,
		ExpiresAt:       received.Add(720 * time.Hour),
	}
}

func TestWebhookEventRepo_SaveNeverDowngrades(t *testing.T) {
	tests := []struct {
		name   string
		stored domain.WebhookOutcome
		next   domain.WebhookOutcome
		want   domain.WebhookOutcome
	}{
		{"order_not_found upgraded to paid", domain.WebhookOutcomeOrderNotFound, domain.WebhookOutcomePaid, domain.WebhookOutcomePaid},
		{"already_final upgraded to failed", domain.WebhookOutcomeAlreadyFinal, domain.WebhookOutcomeFailed, domain.WebhookOutcomeFailed},
		{"paid kept over already_final", domain.WebhookOutcomePaid, domain.WebhookOutcomeAlreadyFinal, domain.WebhookOutcomePaid},
		{"paid kept over order_not_found", domain.WebhookOutcomePaid, domain.WebhookOutcomeOrderNotFound, domain.WebhookOutcomePaid},
		{"failed kept over paid", domain.WebhookOutcomeFailed, domain.WebhookOutcomePaid, domain.WebhookOutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewWebhookEventRepo(newFakeTable(), "orders")
			ctx := context.Background()
			received := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
			require.NoError(t, repo.Save(ctx, newTestEvent("evt_1", "pi_1", tt.stored, received)))

			require.NoError(t, repo.Save(ctx, newTestEvent("evt_1", "pi_1", tt.next, received)))

			got, err := repo.FindByEventID(ctx, "evt_1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Outcome)
		})
	}
}

func TestWebhookEventRepo_FindByPaymentIntentID(t *testing.T) {
	repo := NewWebhookEventRepo(newFakeTable(), "orders")
	ctx := context.Background()
	received := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newTestEvent("evt_late", "pi_1", domain.WebhookOutcomeOrderNotFound, received.Add(time.Minute))))
	require.NoError(t, repo.Save(ctx, newTestEvent("evt_early", "pi_1", domain.WebhookOutcomeOrderNotFound, received)))
	require.NoError(t, repo.Save(ctx, newTestEvent("evt_other", "pi_2", domain.WebhookOutcomePaid, received)))

	events, err := repo.FindByPaymentIntentID(ctx, "pi_1")

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt_early", events[0].EventID)
	assert.Equal(t, "evt_late", events[1].EventID)
	assert.True(t, events[0].Pending())

	none, err := repo.FindByPaymentIntentID(ctx, "pi_none")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWebhookEventRepo_LinkSurvivesRejectedOverwrite(t *testing.T) {
	repo := NewWebhookEventRepo(newFakeTable(), "orders")
	ctx := context.Background()
	received := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newTestEvent("evt_1", "pi_1", domain.WebhookOutcomePaid, received)))
	require.NoError(t, repo.Save(ctx, newTestEvent("evt_1", "pi_1", domain.WebhookOutcomeAlreadyFinal, received)))

	events, err := repo.FindByPaymentIntentID(ctx, "pi_1")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.WebhookOutcomePaid, events[0].Outcome)
}
