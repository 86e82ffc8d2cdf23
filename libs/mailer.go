package libs

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"

	"storefront/config"
)

// Mailer sends the order confirmation after a successful checkout.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("SMTP configuration missing")
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}, nil
}

func (m *Mailer) SendOrderConfirmation(toEmail string, orderID int, total decimal.Decimal) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%d", orderID))
	msg.SetBody("text/html", OrderConfirmationBody(orderID, total))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func OrderConfirmationBody(orderID int, total decimal.Decimal) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .order-box { background-color: #f1f5f9; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2 style="color: #333;">Order Confirmation</h2>
        <p>Thank you for your order!</p>
        <div class="order-box">
            <p><strong>Order Number:</strong> %d</p>
            <p><strong>Total Amount:</strong> %s</p>
        </div>
        <p>Your order has been received and is pending. We'll notify you when it ships.</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, orderID, total.StringFixed(2))
}
