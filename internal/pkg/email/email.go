package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/config"
	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending compliance mail
type EmailService interface {
	SendComplianceDigest(to string, alerts []compliance.ComplianceAlert) error
	SendTerminationNoticeReminder(to, workerName string, contractEnd time.Time, notice compliance.TerminationNotice) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
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
	}, nil
}

type digestEmailData struct {
	GeneratedAt   string
	TotalAlerts   int
	CriticalCount int
	Alerts        []compliance.ComplianceAlert
}

// SendComplianceDigest mails the sweep outcome to an HR recipient.
// Nothing is sent when the alert list is empty.
func (s *emailServiceImpl) SendComplianceDigest(to string, alerts []compliance.ComplianceAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	data := digestEmailData{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 MST"),
		TotalAlerts: len(alerts),
		Alerts:      alerts,
	}
	for _, a := range alerts {
		if a.Severity == compliance.SeverityCritical {
			data.CriticalCount++
		}
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "compliance_digest.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Compliance digest: %d alert(s), %d critical", data.TotalAlerts, data.CriticalCount)
	return s.sendHTML(to, subject, body.String())
}

type terminationNoticeEmailData struct {
	WorkerName    string
	ContractEnd   string
	Deadline      string
	Message       string
	Overdue       bool
	PenaltyDays   int
	PenaltyAmount string
}

// SendTerminationNoticeReminder mails one worker's notice deadline to HR.
func (s *emailServiceImpl) SendTerminationNoticeReminder(to, workerName string, contractEnd time.Time, notice compliance.TerminationNotice) error {
	data := terminationNoticeEmailData{
		WorkerName:    workerName,
		ContractEnd:   contractEnd.Format("2006-01-02"),
		Deadline:      notice.DeadlineDate.Format("2006-01-02"),
		Overdue:       notice.NotificationStatus == compliance.NoticeOverdue,
		PenaltyDays:   notice.PenaltyDays,
		PenaltyAmount: notice.PenaltyAmount.StringFixed(2),
	}
	if data.Overdue {
		data.Message = fmt.Sprintf("The statutory notice deadline passed %d day(s) ago.", notice.PenaltyDays)
	} else {
		data.Message = fmt.Sprintf("The statutory notice deadline is in %d day(s).", notice.DaysUntilDeadline)
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "termination_notice.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Termination notice deadline for %s", workerName), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
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
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
