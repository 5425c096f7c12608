package carrier

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newStubClient(t *testing.T, status int, body string, capture *http.Request) *Client {
	t.Helper()
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if capture != nil {
			*capture = *req
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("http://carrier.test/v1", "test-key", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientQuote(t *testing.T) {
	respBody := `{"rates":[
		{"total":80.0,"delivery_days":2,"carrier":"estafeta","service":"express","success":true},
		{"total":65.5,"delivery_days":4,"carrier":"fedex","service":"ground","success":true},
		{"delivery_days":1,"carrier":"dhl","service":"next_day","success":false}
	]}`

	var captured http.Request
	client := newStubClient(t, http.StatusOK, respBody, &captured)

	rates, err := client.Quote(context.Background(), QuoteRequest{
		Street:     "Av. Reforma",
		ExtNumber:  "100",
		City:       "CDMX",
		State:      "CDMX",
		PostalCode: "06600",
		Country:    "MX",
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if captured.URL.String() != "http://carrier.test/v1/cotizar" {
		t.Fatalf("unexpected URL %q", captured.URL.String())
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", got)
	}
	if len(rates) != 3 {
		t.Fatalf("expected 3 rates, got %d", len(rates))
	}
	if !rates[0].Success || rates[0].Carrier != "estafeta" {
		t.Fatalf("unexpected first rate %+v", rates[0])
	}
	if rates[2].Success {
		t.Fatal("unsuccessful rate must stay unsuccessful")
	}
}

func TestClientQuoteSuccessWithoutTotalIsDemoted(t *testing.T) {
	respBody := `{"rates":[{"delivery_days":3,"carrier":"ghost","service":"std","success":true}]}`
	client := newStubClient(t, http.StatusOK, respBody, nil)

	rates, err := client.Quote(context.Background(), QuoteRequest{PostalCode: "06600"})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(rates))
	}
	if rates[0].Success {
		t.Fatal("rate without a total must not be reported as successful")
	}
}

func TestClientQuoteMissingRates(t *testing.T) {
	client := newStubClient(t, http.StatusOK, `{}`, nil)

	if _, err := client.Quote(context.Background(), QuoteRequest{PostalCode: "06600"}); err == nil {
		t.Fatal("expected error when rates field is absent")
	}
}

func TestClientQuoteRemoteError(t *testing.T) {
	client := newStubClient(t, http.StatusBadGateway, `upstream exploded`, nil)

	if _, err := client.Quote(context.Background(), QuoteRequest{PostalCode: "06600"}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestClientQuoteRequiresPostalCode(t *testing.T) {
	client := newStubClient(t, http.StatusOK, `{"rates":[]}`, nil)

	if _, err := client.Quote(context.Background(), QuoteRequest{}); err == nil {
		t.Fatal("expected validation error for missing postal code")
	}
}
