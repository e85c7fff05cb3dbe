package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:              "o1",
		OrderNumber:     "KH123456789",
		CustomerName:    "Mona <b>Adel</b>",
		CustomerEmail:   "mona@example.com",
		CustomerAddress: "Cairo",
		Items:           twoLineCart(),
		Total:           decimal.NewFromInt(25),
		Status:          models.OrderStatusPending,
	}
}

func TestWebhookNotifierPostsOrder(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewWebhookNotifier(srv.URL).OrderPlaced(context.Background(), sampleOrder()))
	assert.Equal(t, "KH123456789", got["orderNumber"])
}

func TestWebhookNotifierReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL).OrderPlaced(context.Background(), sampleOrder())
	var unavailable *BackendUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestWebhookNotifierSkipsWithoutURL(t *testing.T) {
	assert.NoError(t, NewWebhookNotifier("").OrderPlaced(context.Background(), sampleOrder()))
}

type failingNotifier struct{}

func (failingNotifier) OrderPlaced(context.Context, *models.Order) error {
	return errors.New("down")
}

func TestNotifiersKeepGoingAfterFailure(t *testing.T) {
	ch := make(chanNotifier, 1)
	err := Notifiers{failingNotifier{}, nil, ch}.OrderPlaced(context.Background(), sampleOrder())

	assert.EqualError(t, err, "down")
	assert.Len(t, ch, 1)
}

func TestMailerSendsConfirmation(t *testing.T) {
	m := NewMailer(MailConfig{Host: "smtp.example.com", Port: "587", From: "shop@example.com"})

	var to []string
	var msg string
	m.send = func(addr string, a smtp.Auth, from string, rcpt []string, body []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		to = rcpt
		msg = string(body)
		return nil
	}

	require.NoError(t, m.OrderPlaced(context.Background(), sampleOrder()))
	assert.Equal(t, []string{"mona@example.com"}, to)
	assert.Contains(t, msg, "Subject: Your Khayal order KH123456789")
	assert.Contains(t, msg, "$25.00")
	assert.Contains(t, msg, "Mona &lt;b&gt;Adel&lt;/b&gt;")
}

func TestMailerDisabledWithoutHost(t *testing.T) {
	m := NewMailer(MailConfig{})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.False(t, m.Enabled())
	assert.NoError(t, m.OrderPlaced(context.Background(), sampleOrder()))
}

func TestBuildOrderConfirmationBodyListsItems(t *testing.T) {
	body, err := BuildOrderConfirmationBody(sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(body, "<tr><td>"))
	assert.Contains(t, body, "$20.00")
}
