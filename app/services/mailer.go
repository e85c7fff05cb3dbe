package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/smtp"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/utils/format"
)

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Mailer sends the order confirmation e-mail. With no Host configured it
// does nothing.
type Mailer struct {
	config MailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) Enabled() bool {
	return m.config.Host != ""
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := []struct{ key, value string }{
		{"From", m.config.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h.key, h.value)
	}
	msg.WriteString("\r\n" + htmlBody)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := m.send(addr, auth, m.config.From, []string{to}, msg.Bytes()); err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send to %s: %v", to, err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}
	return nil
}

func (m *Mailer) OrderPlaced(ctx context.Context, order *models.Order) error {
	if !m.Enabled() || order.CustomerEmail == "" {
		return nil
	}

	body, err := BuildOrderConfirmationBody(order)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your Khayal order %s", order.OrderNumber)
	return m.SendHTMLEmail(order.CustomerEmail, subject, body)
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Order {{.Number}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
        table { width: 100%; border-collapse: collapse; }
        td, th { padding: 6px; border-bottom: 1px solid #eee; text-align: left; }
        .total { font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Thank you for your order, {{.Name}}!</h2>
        <p>Your order number is <strong>{{.Number}}</strong>.</p>
        <table>
            <tr><th>Item</th><th>Qty</th><th>Subtotal</th></tr>
            {{range .Lines}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>{{.Subtotal}}</td></tr>
            {{end}}
            <tr class="total"><td colspan="2">Total</td><td>{{.Total}}</td></tr>
        </table>
        <p>We will deliver to: {{.Address}}</p>
        <p>Khayal Shop</p>
    </div>
</body>
</html>
`))

type confirmationLine struct {
	Title    string
	Quantity int
	Subtotal string
}

func BuildOrderConfirmationBody(order *models.Order) (string, error) {
	lines := make([]confirmationLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, confirmationLine{
			Title:    item.Title,
			Quantity: item.Quantity,
			Subtotal: format.Money(item.Subtotal()),
		})
	}

	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, map[string]interface{}{
		"Name":    order.CustomerName,
		"Number":  order.OrderNumber,
		"Lines":   lines,
		"Total":   format.Money(order.Total),
		"Address": order.CustomerAddress,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return buf.String(), nil
}
