package main

import (
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/adarshmisra/portfolio/internal/config"
	"github.com/adarshmisra/portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

const maxMessageLength = 5000

// Mailer delivers contact form submissions.
type Mailer interface {
	Send(msg store.Message) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func newSMTPMailer(cfg config.SMTPConfig) *smtpMailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(msg store.Message) error {
	if !m.cfg.Configured() {
		return fmt.Errorf("SMTP credentials not configured")
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form (ref %s)
`, msg.Name, msg.Email, msg.Message, msg.ID)

	raw := []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	return smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, raw)
}

// headerSafe strips line breaks so form input cannot add mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}

// Handle contact form submission with HTMX
func (s *server) handleContact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || message == "" {
		contactError(c, "Please fill in your name, email and message.")
		return
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		contactError(c, "Please enter a valid email address.")
		return
	}
	if len(message) > maxMessageLength {
		contactError(c, fmt.Sprintf("Please keep your message under %d characters.", maxMessageLength))
		return
	}

	msg := &store.Message{Name: name, Email: email, Message: message}
	if err := s.store.SaveMessage(c.Request.Context(), msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		contactError(c, "Sorry, there was an error sending your message. Please try again later.")
		return
	}

	// delivery is best effort once the message is persisted
	if err := s.mailer.Send(*msg); err != nil {
		log.Printf("Error sending email for message %s: %v", msg.ID, err)
	} else {
		if err := s.store.MarkDelivered(c.Request.Context(), msg.ID); err != nil {
			log.Printf("Error marking message %s delivered: %v", msg.ID, err)
		}
		log.Printf("Email sent successfully from %s (%s)", name, email)
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func contactError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "contact-error.html", gin.H{
		"error": msg,
	})
}
