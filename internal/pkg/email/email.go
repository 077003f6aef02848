package email

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Attachment is a file sent along with an e-mail.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportSummary fills the body of a report e-mail.
type ReportSummary struct {
	Title       string
	Period      string
	RecordCount int
	TotalHours  string
	Empty       bool
	GeneratedAt string
}

// EmailService defines the interface for sending emails
type EmailService interface {
	SendReport(ctx context.Context, to string, summary ReportSummary, attachment Attachment) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

// SendReport mails a rendered report as an attachment
func (s *emailServiceImpl) SendReport(ctx context.Context, to string, summary ReportSummary, attachment Attachment) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "time_report.html", summary); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendWithAttachment(ctx, to, summary.Title, body.String(), attachment)
}

func (s *emailServiceImpl) sendWithAttachment(ctx context.Context, to, subject, htmlBody string, attachment Attachment) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	message, err := buildMessage(s.cfg.FromName, from, to, subject, htmlBody, attachment)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.backoff << (attempt - 1)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

// buildMessage assembles a multipart/mixed message with an HTML body and
// one base64 attachment.
func buildMessage(fromName, from, to, subject, htmlBody string, attachment Attachment) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", mime.QEncoding.Encode("utf-8", fromName)+" <"+from+">")
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", w.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", `text/html; charset="UTF-8"`)
	htmlHeader.Set("Content-Transfer-Encoding", "base64")
	part, err := w.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if err := writeBase64(part, []byte(htmlBody)); err != nil {
		return nil, err
	}

	if attachment.Filename != "" {
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		fileHeader := textproto.MIMEHeader{}
		fileHeader.Set("Content-Type", contentType)
		fileHeader.Set("Content-Transfer-Encoding", "base64")
		fileHeader.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename}))
		part, err := w.CreatePart(fileHeader)
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, attachment.Data); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64 encodes data in 76-character lines.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")
	_, err := w.Write([]byte(b.String()))
	return err
}
