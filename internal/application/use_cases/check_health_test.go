package use_cases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckHealth_Statuses(t *testing.T) {
	tests := []struct {
		name          string
		configured    bool
		pingErr       error
		webhookSecret bool
		dbErr         error
		want          string
	}{
		{name: "all good", configured: true, webhookSecret: true, want: HealthHealthy},
		{name: "stripe unreachable", configured: true, webhookSecret: true, pingErr: errors.New("timeout"), want: HealthDegraded},
		{name: "stripe not configured", configured: false, webhookSecret: true, want: HealthDegraded},
		{name: "webhook secret missing", configured: true, webhookSecret: false, want: HealthDegraded},
		{name: "database down", configured: true, webhookSecret: true, dbErr: errors.New("refused"), want: HealthUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			gw.On("Configured").Return(tt.configured)
			gw.On("Ping", mock.Anything).Return(tt.pingErr).Maybe()
			v := new(mockVerifier)
			v.On("Configured").Return(tt.webhookSecret)
			orders := new(mockOrderRepo)
			orders.On("Ping", mock.Anything).Return(tt.dbErr)

			report := NewCheckHealthUseCase(gw, v, orders, true, discardLogger()).Execute(context.Background())

			assert.Equal(t, tt.want, report.Status)
			assert.Equal(t, tt.dbErr == nil, report.Checks.Database.Connection)
			assert.True(t, report.Checks.Stripe.PublishableKeyConfigured)
			if !tt.configured {
				gw.AssertNotCalled(t, "Ping", mock.Anything)
			}
		})
	}
}
