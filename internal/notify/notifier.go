// Package notify tells the shopper their order reached the atelier.
package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"text/template"

	"github.com/lumiere-stone/atelier/internal/currency"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/pkg/sendgrid"
)

type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order) error
}

// LogNotifier records the confirmation in the log only.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) OrderPlaced(_ context.Context, order models.Order) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(models.CheckoutConfirmation,
		slog.String("orderId", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Float64("totalUSD", order.TotalUSD))
	return nil
}

const subject = "Your Lumière & Stone order"

var funcs = map[string]any{
	"usd": func(v float64) string { return currency.DisplayPrice(v, currency.Currencies[models.CurrencyUSD]) },
}

var textBody = template.Must(template.New("text").Funcs(funcs).Parse(`Dear {{.CustomerName}},

{{.Confirmation}}

Order {{.ID}}
{{range .Items}}- {{.Name}}{{if .SelectedSize}} (size {{.SelectedSize}}){{end}}: {{usd .PriceUSD}}
{{end}}
Total: {{usd .TotalUSD}}
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(`<p>Dear {{.CustomerName}},</p>
<p>{{.Confirmation}}</p>
<p>Order {{.ID}}</p>
<ul>{{range .Items}}<li>{{.Name}}{{if .SelectedSize}} (size {{.SelectedSize}}){{end}}: {{usd .PriceUSD}}</li>{{end}}</ul>
<p><strong>Total: {{usd .TotalUSD}}</strong></p>
`))

type emailData struct {
	models.Order
	Confirmation string
}

// EmailNotifier mails the confirmation through SendGrid.
type EmailNotifier struct {
	emails sendgrid.EmailService
	bcc    []string
}

func NewEmailNotifier(emails sendgrid.EmailService, bcc ...string) *EmailNotifier {
	return &EmailNotifier{emails: emails, bcc: bcc}
}

func (n *EmailNotifier) OrderPlaced(ctx context.Context, order models.Order) error {
	data := emailData{Order: order, Confirmation: models.CheckoutConfirmation}

	var text, html bytes.Buffer
	if err := textBody.Execute(&text, data); err != nil {
		return fmt.Errorf("rendering confirmation text: %w", err)
	}
	if err := htmlBody.Execute(&html, data); err != nil {
		return fmt.Errorf("rendering confirmation html: %w", err)
	}

	err := n.emails.Send(ctx, &sendgrid.Email{
		To:          order.CustomerEmail,
		ToName:      order.CustomerName,
		BCC:         n.bcc,
		Subject:     subject,
		Content:     text.String(),
		HTMLContent: html.String(),
	})
	if err != nil {
		return fmt.Errorf("sending order confirmation: %w", err)
	}

	return nil
}
