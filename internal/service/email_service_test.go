package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/queue"
)

type capturedEmail struct {
	to, subject, body string
}

type fakeSender struct {
	disabled bool
	err      error
	sent     []capturedEmail
}

func (s *fakeSender) Enabled() bool { return !s.disabled }

func (s *fakeSender) SendHTMLEmail(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, capturedEmail{to: to, subject: subject, body: body})
	return nil
}

type fakeEnqueuer struct {
	enabled  bool
	err      error
	payloads []queue.OrderConfirmationPayload
}

func (e *fakeEnqueuer) Enabled() bool { return e.enabled }

func (e *fakeEnqueuer) EnqueueOrderConfirmation(payload queue.OrderConfirmationPayload) error {
	if e.err != nil {
		return e.err
	}
	e.payloads = append(e.payloads, payload)
	return nil
}

func sampleConfirmationOrder() *models.Order {
	return &models.Order{
		ID:                  11,
		Code:                "ORD-01JTEST",
		ContactInfo:         "jane@example.com",
		SubtotalAmount:      models.MustMoney("119.98"),
		DeliveryFeeSnapshot: models.MustMoney("10"),
		DiscountAmount:      models.MustMoney("12"),
		TotalAmount:         models.MustMoney("117.98"),
		Status:              "pending",
		CreatedAt:           time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductName: "BPC-157 <5mg>", Quantity: 2, PriceSnapshot: models.MustMoney("49.99")},
		},
		PaymentMethod: &models.PaymentMethod{Name: "Zelle", Instructions: "Send to pay@example.com & note the code"},
	}
}

func TestRenderConfirmationEmail(t *testing.T) {
	body := RenderConfirmationEmail(config.DefaultConfirmationTemplate, sampleConfirmationOrder())
	for _, want := range []string{
		"ORD-01JTEST",
		"$119.98",
		"$10.00",
		"$12.00",
		"$117.98",
		"<li>BPC-157 &lt;5mg&gt; x 2 @ $49.99</li>",
		"Zelle",
		"Send to pay@example.com &amp; note the code",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("rendered body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "{{") {
		t.Fatalf("unreplaced placeholder left in body:\n%s", body)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("shop@example.com", "jane@example.com", "Order Created", "<p>hi</p>", contentTypeHTML)
	for _, want := range []string{
		"From: shop@example.com\r\n",
		"To: jane@example.com\r\n",
		"Subject: Order Created\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"\r\n\r\n<p>hi</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestEmailServiceDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendHTMLEmail("jane@example.com", "s", "b"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
	svc = NewEmailService(&config.EmailConfig{Enabled: true})
	if err := svc.SendHTMLEmail("jane@example.com", "s", "b"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
	if !IsPermanentNotificationError(ErrEmailServiceDisabled) || IsPermanentNotificationError(errors.New("timeout")) {
		t.Fatalf("permanent error classification mismatch")
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	err := normalizeEmailSendError(errors.New("550 5.1.1 Recipient address rejected: user unknown"))
	if !errors.Is(err, ErrEmailRecipientRejected) {
		t.Fatalf("expected recipient rejection, got %v", err)
	}
	if errors.Is(normalizeEmailSendError(errors.New("dial tcp: i/o timeout")), ErrEmailRecipientRejected) {
		t.Fatalf("network errors must not be classified as rejection")
	}
}

func TestNotifyOrderCreatedPrefersQueue(t *testing.T) {
	enqueuer := &fakeEnqueuer{enabled: true}
	sender := &fakeSender{}
	svc := NewNotificationService(enqueuer, sender, config.ConfirmationEmailConfig{Subject: "Thanks"}, nil)

	if err := svc.NotifyOrderCreated(context.Background(), sampleConfirmationOrder()); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(enqueuer.payloads) != 1 || enqueuer.payloads[0].OrderID != 11 {
		t.Fatalf("expected one queued confirmation, got %+v", enqueuer.payloads)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("inline send must be skipped when queued")
	}
}

func TestNotifyOrderCreatedFallsBackInline(t *testing.T) {
	enqueuer := &fakeEnqueuer{enabled: true, err: errors.New("redis down")}
	sender := &fakeSender{}
	svc := NewNotificationService(enqueuer, sender, config.ConfirmationEmailConfig{Subject: "Thanks"}, nil)

	if err := svc.NotifyOrderCreated(context.Background(), sampleConfirmationOrder()); err != nil {
		t.Fatalf("inline fallback failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].to != "jane@example.com" || sender.sent[0].subject != "Thanks" {
		t.Fatalf("unexpected inline send: %+v", sender.sent)
	}

	sender.err = errors.New("smtp down")
	if err := svc.NotifyOrderCreated(context.Background(), sampleConfirmationOrder()); err == nil {
		t.Fatalf("inline failure must be reported")
	}

	noSender := NewNotificationService(nil, nil, config.ConfirmationEmailConfig{}, nil)
	if err := noSender.NotifyOrderCreated(context.Background(), sampleConfirmationOrder()); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestNotifyOrderCreatedSkipsQueueWhenEmailDisabled(t *testing.T) {
	enqueuer := &fakeEnqueuer{enabled: true}
	svc := NewNotificationService(enqueuer, NewEmailService(&config.EmailConfig{Enabled: false}), config.ConfirmationEmailConfig{}, nil)

	if err := svc.NotifyOrderCreated(context.Background(), sampleConfirmationOrder()); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
	if len(enqueuer.payloads) != 0 {
		t.Fatalf("disabled email must not be queued, got %+v", enqueuer.payloads)
	}

	disabled := NewNotificationService(enqueuer, &fakeSender{disabled: true}, config.ConfirmationEmailConfig{}, nil)
	if err := disabled.NotifyOrderCreated(context.Background(), sampleConfirmationOrder()); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled for disabled sender, got %v", err)
	}
	if len(enqueuer.payloads) != 0 {
		t.Fatalf("disabled sender must not be queued")
	}
}
