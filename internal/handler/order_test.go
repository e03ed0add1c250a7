package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanabid1694/sj-server/internal/notify"
	"github.com/khanabid1694/sj-server/internal/order"
)

type mockOrderService struct {
	submitFunc func(ctx context.Context, o *order.Order) (string, error)
}

func (m *mockOrderService) Submit(ctx context.Context, o *order.Order) (string, error) {
	return m.submitFunc(ctx, o)
}

func newOrderRouter(svc order.Service) *chi.Mux {
	r := chi.NewRouter()
	NewOrderHandler(svc).RegisterRoutes(r)
	return r
}

func TestOrderHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		submitFunc     func(ctx context.Context, o *order.Order) (string, error)
		expectedStatus int
		wantSuccess    bool
		wantSubmit     bool
	}{
		{
			name: "success",
			body: `{"customerName":"A","phone":"123","address":"Somewhere","totalAmount":250.5}`,
			submitFunc: func(ctx context.Context, o *order.Order) (string, error) {
				return "ORD-1", nil
			},
			expectedStatus: http.StatusOK,
			wantSuccess:    true,
			wantSubmit:     true,
		},
		{
			name:           "missing_customer_name",
			body:           `{"phone":"123","address":"Somewhere","totalAmount":250.5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing_phone",
			body:           `{"customerName":"A","address":"Somewhere","totalAmount":250.5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing_address",
			body:           `{"customerName":"A","phone":"123","totalAmount":250.5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown_field_rejected",
			body:           `{"customerName":"A","phone":"123","address":"X","totalAmount":1,"bogus":true}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "notification_failure",
			body: `{"customerName":"A","phone":"123","address":"Somewhere","totalAmount":250.5}`,
			submitFunc: func(ctx context.Context, o *order.Order) (string, error) {
				return "", fmt.Errorf("service: failed to notify order ORD-2: %w", notify.ErrNotificationFailed)
			},
			expectedStatus: http.StatusInternalServerError,
			wantSubmit:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitted := false
			svc := &mockOrderService{
				submitFunc: func(ctx context.Context, o *order.Order) (string, error) {
					submitted = true
					if tt.submitFunc == nil {
						t.Fatal("unexpected submit call")
					}
					return tt.submitFunc(ctx, o)
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newOrderRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantSubmit, submitted)

			var resp OrderResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantSuccess, resp.Success)
			assert.NotEmpty(t, resp.Message)
			if tt.wantSuccess {
				assert.Equal(t, "ORD-1", resp.OrderID)
			}
		})
	}
}

func TestOrderHandler_Submit_ItemsForwarded(t *testing.T) {
	var got *order.Order
	svc := &mockOrderService{
		submitFunc: func(ctx context.Context, o *order.Order) (string, error) {
			got = o
			return "ORD-7", nil
		},
	}

	body := `{
		"customerName": "A",
		"phone": "123",
		"address": "Somewhere",
		"items": [{"title": "Ring", "weight": "2g"}, {"title": "Chain", "weight": "5g"}],
		"totalAmount": 99.9,
		"paymentMethod": "COD",
		"orderId": "ORD-7"
	}`

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newOrderRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Ring", got.Items[0].Title)
	assert.Equal(t, "COD", got.PaymentMethod)
	assert.Equal(t, "ORD-7", got.OrderID)
	assert.Equal(t, 99.9, got.TotalAmount)
}
