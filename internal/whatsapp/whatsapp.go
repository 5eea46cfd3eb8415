// Package whatsapp composes click-to-chat deep links for sending an
// order bill to the customer.
package whatsapp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"vyapari/internal/core"
)

// DefaultDomain is WhatsApp's public click-to-chat endpoint.
const DefaultDomain = "wa.me"

var ErrNoPhone = errors.New("order has no customer phone")

// BillMessage renders the greeting sent with an order's bill.
func BillMessage(o core.Order) string {
	return fmt.Sprintf("Hi %s! Your order %s for %s is ready. Thank you!",
		o.CustomerName, o.ID, o.TotalAmount)
}

// BillLink builds the deep link for the order's customer. All
// whitespace is stripped from the phone number before it goes into the
// path; the message lands URL-encoded in the text parameter. An empty
// domain falls back to DefaultDomain.
func BillLink(o core.Order, domain string) (string, error) {
	phone := stripSpace(o.CustomerPhone)
	if phone == "" {
		return "", ErrNoPhone
	}
	if domain == "" {
		domain = DefaultDomain
	}
	return fmt.Sprintf("https://%s/%s?text=%s",
		domain, phone, url.QueryEscape(BillMessage(o))), nil
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
