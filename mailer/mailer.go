// Package mailer sends OTP and welcome emails over SMTP. Delivery failure
// is reported to the caller but never fails a signup.
package mailer

import (
	"fmt"
	"net/smtp"
	"os"
)

type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// FromEnv builds a mailer from MAIL_* env vars. When MAIL_USERNAME is
// unset, the mailer is disabled and Send becomes a no-op.
func FromEnv() *Mailer {
	m := &Mailer{
		host:     os.Getenv("MAIL_SERVER"),
		port:     os.Getenv("MAIL_PORT"),
		username: os.Getenv("MAIL_USERNAME"),
		password: os.Getenv("MAIL_PASSWORD"),
	}
	if m.host == "" {
		m.host = "smtp.gmail.com"
	}
	if m.port == "" {
		m.port = "587"
	}
	m.from = m.username
	return m
}

func (m *Mailer) Enabled() bool {
	return m.username != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body))
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}

// SendOTP emails the signup verification code.
func (m *Mailer) SendOTP(to, username, otp string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour UrbanEase verification code is %s. It expires in 10 minutes.\n", username, otp)
	return m.Send(to, "Your UrbanEase verification code", body)
}

// SendWelcome emails the post-verification greeting.
func (m *Mailer) SendWelcome(to, username, accountType string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour %s account has been successfully created.\n\nWelcome to UrbanEase! We are excited to have you on board.\n", username, accountType)
	return m.Send(to, "Welcome to UrbanEase!", body)
}
