package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"drinkmate_backend/internal/models"

	"github.com/wneessen/go-mail"
)

// SendOrderConfirmation mails the order summary to the customer.
func SendOrderConfirmation(order models.Order) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@drinkmate.sa"); err != nil {
		return err
	}
	if err := msg.To(order.Email); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Your Drinkmate order %s is confirmed", order.OrderNumber))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending confirmation e-mail to", order.Email)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f %s</td>
				<td>%.2f %s</td>
			</tr>`, item.Name, item.Quantity,
			item.UnitPrice, order.Currency,
			item.UnitPrice*float64(item.Quantity), order.Currency))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	<h2>Thank you for your order!</h2>
	<p>Order <strong>%s</strong> has been received.</p>
	<table border="0" cellpadding="6" style="border-collapse: collapse;">
		<tr><th align="left">Item</th><th>Qty</th><th>Unit</th><th>Total</th></tr>
		%s
	</table>
	<p>Subtotal: %.2f %s<br>
	Discount: -%.2f %s<br>
	Shipping: %.2f %s<br>
	VAT: %.2f %s<br>
	<strong>Total: %.2f %s</strong></p>
	<p>You can follow your delivery with your order number and e-mail at any time.</p>
</body>
</html>`,
		order.OrderNumber, rows.String(),
		order.Subtotal, order.Currency,
		order.Discount, order.Currency,
		order.ShippingCost, order.Currency,
		order.Tax, order.Currency,
		order.Total, order.Currency)
}
