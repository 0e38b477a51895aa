package notifier

import (
	"fmt"
	"time"

	"billsplit-backend/config"
	"billsplit-backend/internal/models"
	"billsplit-backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends notifications over SMTP. It is constructed once and injected
// into the bill service instead of living as ambient global state.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	portalURL string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:      cfg.MailFrom,
		portalURL: cfg.PortalURL,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) NewBill(users []models.User, bill models.Bill) {
	sent := 0
	for _, user := range users {
		if user.Email == "" {
			continue
		}

		subject := fmt.Sprintf("New Bill: %s", billTitle(bill))
		body := fmt.Sprintf(`
<div style="font-family: sans-serif; padding: 20px; border: 1px solid #ddd; max-width: 600px;">
    <h2 style="color: #6366f1;">New Bill Posted</h2>
    <p>Hi %s,</p>
    <p>A new bill has been added by the admin.</p>
    <table style="width: 100%%; margin: 20px 0; border-collapse: collapse;">
        <tr><td style="padding: 10px;">Description</td><td style="padding: 10px; font-weight: bold;">%s</td></tr>
        <tr><td style="padding: 10px;">Total Amount</td><td style="padding: 10px;">&#8377;%.2f</td></tr>
        <tr><td style="padding: 10px;">Your Share</td><td style="padding: 10px; font-weight: bold; color: #6366f1;">&#8377;%.2f</td></tr>
    </table>
    <p>Please login to the <a href="%s/user/login">User Portal</a> to upload your payment proof.</p>
</div>`, user.Name, bill.Description, bill.TotalAmount, bill.IndividualShare, m.portalURL)

		if err := m.send(user.Email, subject, body); err != nil {
			logger.Log.Error("failed to send bill notification",
				zap.String("email", user.Email), zap.Uint("bill_id", bill.ID), zap.Error(err))
			continue
		}
		sent++
	}

	logger.Log.Info("bill notifications dispatched",
		zap.Uint("bill_id", bill.ID), zap.Int("sent", sent), zap.Int("recipients", len(users)))
}

func (m *Mailer) Reminder(user models.User, bill models.Bill) error {
	if user.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("REMINDER: Unpaid Bill - %s", bill.Description)
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; padding: 20px; border: 1px solid #ddd; max-width: 600px;">
    <h2 style="color: #ef4444;">Payment Reminder</h2>
    <p>Hi %s,</p>
    <p>This is a gentle reminder that your share of <strong>&#8377;%.2f</strong> for the bill "<strong>%s</strong>" is still Unpaid.</p>
    <a href="%s/user/login" style="display: inline-block; background: #6366f1; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Pay Now</a>
</div>`, user.Name, bill.IndividualShare, bill.Description, m.portalURL)

	return m.send(user.Email, subject, body)
}

func (m *Mailer) Receipt(user models.User, bill models.Bill) error {
	if user.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Payment Receipt: %s", billTitle(bill))
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; padding: 20px; border: 1px solid #ddd; max-width: 600px;">
    <h2 style="color: #10b981;">Payment Received</h2>
    <p>Hi %s,</p>
    <p>Your payment has been approved by the admin.</p>
    <table style="width: 100%%; margin: 20px 0; border-collapse: collapse;">
        <tr><td style="padding: 10px;">Bill</td><td style="padding: 10px; font-weight: bold;">%s</td></tr>
        <tr><td style="padding: 10px;">Amount Paid</td><td style="padding: 10px; font-weight: bold; color: #10b981;">&#8377;%.2f</td></tr>
        <tr><td style="padding: 10px;">Date</td><td style="padding: 10px;">%s</td></tr>
        <tr><td style="padding: 10px;">Status</td><td style="padding: 10px; color: #10b981; font-weight: bold;">PAID</td></tr>
    </table>
</div>`, user.Name, bill.Description, bill.IndividualShare, time.Now().Format("02 Jan 2006"))

	return m.send(user.Email, subject, body)
}

func billTitle(bill models.Bill) string {
	if bill.Description == "" {
		return "Monthly Expenses"
	}
	return bill.Description
}
