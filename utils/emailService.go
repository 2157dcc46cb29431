package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"kwa/config"
)

// SendEmail delivers one HTML email through SendGrid. Callers treat email
// as best-effort: a failure is logged and never propagated into the
// operation that triggered it.
func SendEmail(to, toName, subject, htmlBody string) error {
	from := mail.NewEmail("Kingdom Way Academy", config.AppConfig.EmailSender)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	log.Printf("Email sent to %s: %s", to, subject)
	return nil
}

// SendEmailAsync fires the email from a goroutine and swallows the error
func SendEmailAsync(to, toName, subject, htmlBody string) {
	go func() {
		_ = SendEmail(to, toName, subject, htmlBody)
	}()
}

// getEmailTemplate wraps body content in the academy's HTML shell
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E1B4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E1B4B; line-height: 1.6; }
			.content h2 { color: #1E1B4B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #C8A951; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; border-left: 4px solid #C8A951; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>KINGDOM WAY ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Kingdom Way Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to Kingdom Way Academy! Your account is ready.</p>
		<p>Browse the course catalog and start learning today.</p>
		<a class="btn" href="%s/browse">Browse Courses</a>`,
		name, config.AppConfig.AppURL)

	SendEmailAsync(email, name, "Welcome to Kingdom Way Academy", getEmailTemplate("Welcome aboard!", body))
}

// SendEnrollmentEmail confirms a new (paid) enrollment
func SendEnrollmentEmail(email, name, courseTitle string, courseID uint) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your payment was received and you are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">All chapters and lessons are unlocked. Your progress is saved as you go.</div>
		<a class="btn" href="%s/courses/%d">Start the Course</a>`,
		name, courseTitle, config.AppConfig.AppURL, courseID)

	SendEmailAsync(email, name, fmt.Sprintf("You're enrolled in %s", courseTitle), getEmailTemplate("Enrollment confirmed", body))
}

// SendCertificateEmail congratulates the user on their first certificate
// for a course. Sent once, at certificate creation, never on re-download.
func SendCertificateEmail(email, name, courseTitle string, courseID uint) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You completed <strong>%s</strong> and earned your certificate.</p>
		<a class="btn" href="%s/api/course/%d/certificate">Download Certificate</a>`,
		name, courseTitle, config.AppConfig.AppURL, courseID)

	SendEmailAsync(email, name, fmt.Sprintf("Your certificate for %s", courseTitle), getEmailTemplate("Certificate earned!", body))
}

// SendSubscriptionPastDueEmail nudges a user whose payment failed
func SendSubscriptionPastDueEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your membership payment could not be collected. Please update your payment method to keep access.</p>
		<a class="btn" href="%s/api/payment/portal">Manage Billing</a>`,
		name, config.AppConfig.AppURL)

	SendEmailAsync(email, name, "Action needed: membership payment failed", getEmailTemplate("Payment issue", body))
}
