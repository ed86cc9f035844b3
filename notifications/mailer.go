// Package notifications is the best-effort sink for lifecycle events:
// customer email over SMTP plus an optional Kafka stream for the operator
// channel. Callers invoke it only after the primary write has been
// persisted; failures are logged and never propagated.
package notifications

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/prabhat63s/MRITTIKA/configs"
)

// sendEmail delivers one HTML message through the configured relay.
// Returns nil without sending when SMTP credentials are absent, so
// development environments work without a mail account.
var sendEmail = func(to, subject, html string) error {
	from := configs.EnvSMTPEmail()
	password := configs.EnvSMTPPassword()
	if from == "" || password == "" {
		logrus.WithField("to", to).Debug("smtp not configured, skipping email")
		return nil
	}

	host := configs.EnvSMTPHost()
	addr := host + ":" + configs.EnvSMTPPort()

	msg := fmt.Sprintf(
		"From: \"MRITTIKA Support\" <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, html,
	)

	auth := smtp.PlainAuth("", from, password, host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

// send logs and swallows delivery errors.
func send(to, subject, html string) {
	if to == "" {
		return
	}
	if err := sendEmail(to, subject, html); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Error("email dispatch failed")
	}
}
