package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khanabid1694/sj-server/internal/order"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name     string
		order    *order.Order
		ref      string
		expected string
	}{
		{
			name: "full_order",
			order: &order.Order{
				CustomerName: "Aisha Khan",
				Phone:        "+92123456789",
				Address:      "12 Mall Road, Lahore",
				Items: []order.Item{
					{Title: "Gold Ring", Weight: "2.5g"},
					{Title: "Silver Chain", Weight: "10g"},
				},
				TotalAmount:   2500.50,
				PaymentMethod: "COD",
			},
			ref: "ORD-1",
			expected: "New order received!\n" +
				"Order ref: ORD-1\n" +
				"Customer: Aisha Khan\n" +
				"Phone: +92123456789\n" +
				"Address: 12 Mall Road, Lahore\n" +
				"Items (2):\n" +
				"1. Gold Ring (2.5g)\n" +
				"2. Silver Chain (10g)\n" +
				"Total: 2500.50\n" +
				"Payment: COD\n",
		},
		{
			name: "optional_fields_absent",
			order: &order.Order{
				CustomerName: "A",
				Phone:        "123",
			},
			ref: "ORD-2",
			expected: "New order received!\n" +
				"Order ref: ORD-2\n" +
				"Customer: A\n" +
				"Phone: 123\n" +
				"Address: Not provided\n" +
				"Total: 0.00\n",
		},
		{
			name: "item_without_weight",
			order: &order.Order{
				CustomerName: "A",
				Phone:        "123",
				Address:      "X",
				Items:        []order.Item{{Title: "Ring"}},
				TotalAmount:  100,
			},
			ref: "ORD-3",
			expected: "New order received!\n" +
				"Order ref: ORD-3\n" +
				"Customer: A\n" +
				"Phone: 123\n" +
				"Address: X\n" +
				"Items (1):\n" +
				"1. Ring (-)\n" +
				"Total: 100.00\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, order.FormatMessage(tt.order, tt.ref))
		})
	}
}

func TestFormatMessage_Deterministic(t *testing.T) {
	o := &order.Order{
		CustomerName: "A",
		Phone:        "123",
		Items:        []order.Item{{Title: "Ring", Weight: "1g"}},
		TotalAmount:  42,
	}

	first := order.FormatMessage(o, "ORD-9")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, order.FormatMessage(o, "ORD-9"))
	}
}
