package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestCreatePreference(t *testing.T) {
	respBody := `{"id":"pref_123","init_point":"https://pay.test/go/pref_123","sandbox_init_point":"https://sandbox.pay.test/go/pref_123"}`

	var capturedURL string
	var capturedBody map[string]any
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(raw, &capturedBody); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusCreated,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://pay.test/v1", "token", true, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	pref, err := client.CreatePreference(context.Background(), PreferenceRequest{
		ExternalReference: "order-42",
		Items: []PreferenceItem{
			{Title: "Licencia CAD Pro", Quantity: 1, UnitPrice: "1225.00"},
		},
	})
	if err != nil {
		t.Fatalf("create preference: %v", err)
	}

	if capturedURL != "http://pay.test/v1/checkout/preferences" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedBody["external_reference"] != "order-42" {
		t.Fatalf("unexpected external reference %v", capturedBody["external_reference"])
	}
	if pref.ID != "pref_123" {
		t.Fatalf("unexpected preference id %q", pref.ID)
	}
	if got := pref.RedirectURL(true); got != "https://sandbox.pay.test/go/pref_123" {
		t.Fatalf("unexpected sandbox redirect %q", got)
	}
	if got := pref.RedirectURL(false); got != "https://pay.test/go/pref_123" {
		t.Fatalf("unexpected live redirect %q", got)
	}
}

func TestCreatePreferenceMissingInitPoint(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"id":"pref_123"}`)),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("http://pay.test/v1", "token", false, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CreatePreference(context.Background(), PreferenceRequest{
		ExternalReference: "order-42",
		Items:             []PreferenceItem{{Title: "x", Quantity: 1, UnitPrice: "1.00"}},
	})
	if err == nil {
		t.Fatal("expected error when init_point missing")
	}
}

func TestCreatePreferenceValidation(t *testing.T) {
	client, err := NewClient("http://pay.test/v1", "token", false)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreatePreference(context.Background(), PreferenceRequest{}); err == nil {
		t.Fatal("expected validation error for empty request")
	}
	if _, err := client.CreatePreference(context.Background(), PreferenceRequest{ExternalReference: "x"}); err == nil {
		t.Fatal("expected validation error when items missing")
	}
}
