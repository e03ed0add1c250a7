package order

import (
	"fmt"
	"strings"
)

// FormatMessage renders an order into the text delivered to the admin.
// Absent optional fields get placeholder text; formatting never fails.
func FormatMessage(o *Order, ref string) string {
	var b strings.Builder

	b.WriteString("New order received!\n")
	fmt.Fprintf(&b, "Order ref: %s\n", ref)
	fmt.Fprintf(&b, "Customer: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", o.Phone)

	address := o.Address
	if address == "" {
		address = "Not provided"
	}
	fmt.Fprintf(&b, "Address: %s\n", address)

	if len(o.Items) > 0 {
		fmt.Fprintf(&b, "Items (%d):\n", len(o.Items))
		for i, item := range o.Items {
			weight := item.Weight
			if weight == "" {
				weight = "-"
			}
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, item.Title, weight)
		}
	}

	fmt.Fprintf(&b, "Total: %.2f\n", o.TotalAmount)

	if o.PaymentMethod != "" {
		fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMethod)
	}

	return b.String()
}
