package services

import (
	"errors"
	"os"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/JarkkoKarki/Web-Project-Backend/models"
)

// CheckoutService wraps the payment provider. A checkout session is a
// hosted payment page; the service returns its URL and the client is
// redirected there.
type CheckoutService struct {
	successURL string
	cancelURL  string
}

func NewCheckoutService() *CheckoutService {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	successURL := os.Getenv("SUCCESS_URL")
	if successURL == "" {
		successURL = "http://localhost:8080/payment.html?status=success"
	}
	cancelURL := os.Getenv("CANCEL_URL")
	if cancelURL == "" {
		cancelURL = "http://localhost:8080/payment.html?status=failed"
	}
	return &CheckoutService{successURL: successURL, cancelURL: cancelURL}
}

// CreateSession builds one line item per product, priced from the catalog
// rows handed in, and returns the hosted checkout URL.
func (cs *CheckoutService) CreateSession(products []models.Product, quantities map[uint]int) (string, error) {
	if len(products) == 0 {
		return "", errors.New("no products to charge for")
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(products))
	for _, p := range products {
		qty := quantities[p.ID]
		if qty <= 0 {
			qty = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyEUR)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(p.NameEn),
					Description: stripe.String(p.DescEn),
				},
				// Stripe amounts are integer cents.
				UnitAmount: stripe.Int64(int64(p.Price * 100)),
			},
			Quantity: stripe.Int64(int64(qty)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(cs.successURL),
		CancelURL:          stripe.String(cs.cancelURL),
	}

	s, err := session.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}
