package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/pkg/config"
)

// SMTPSender delivers action-item digests over SMTP
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPSender creates a mailer. Returns an error when credentials are
// missing so the caller can run without email notifications.
func NewSMTPSender(cfg *config.SMTPConfig, logger *zap.Logger) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
	}, nil
}

// SendActionItemDigest emails one assignee their items from a meeting
func (s *SMTPSender) SendActionItemDigest(ctx context.Context, to, assignee, meetingTitle string, items []*entities.ActionItem) error {
	if len(items) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Action Items Assigned: %s", meetingTitle)
	text := buildDigestText(assignee, meetingTitle, items)
	html := buildDigestHTML(assignee, meetingTitle, items)

	msg := buildMessage(s.from, to, subject, text, html)

	// net/smtp has no context support; honor cancellation before dialing
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Info("📧 Action item digest sent",
		zap.String("to", to),
		zap.Int("items", len(items)))
	return nil
}

func priorityEmoji(priority string) string {
	switch priority {
	case entities.ActionItemPriorityHigh:
		return "🔴"
	case entities.ActionItemPriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

func buildDigestText(assignee, meetingTitle string, items []*entities.ActionItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your Action Items from %q\n\nHi %s,\n\nYou've been assigned %d action item(s):\n", meetingTitle, assignee, len(items))

	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, item.Text)
		fmt.Fprintf(&b, "   Priority: %s %s\n", priorityEmoji(item.Priority), item.Priority)
		fmt.Fprintf(&b, "   Category: %s\n", item.Category)
		if item.JiraIssueKey != nil {
			url := ""
			if item.JiraIssueURL != nil {
				url = *item.JiraIssueURL
			}
			fmt.Fprintf(&b, "   Jira: %s %s\n", *item.JiraIssueKey, url)
		}
	}

	b.WriteString("\n---\nThis is an automated email from your meeting assistant. Please do not reply.\n")
	return b.String()
}

func buildDigestHTML(assignee, meetingTitle string, items []*entities.ActionItem) string {
	var rows strings.Builder
	for _, item := range items {
		jiraLine := ""
		if item.JiraIssueKey != nil {
			url := "#"
			if item.JiraIssueURL != nil {
				url = *item.JiraIssueURL
			}
			jiraLine = fmt.Sprintf(`<p style="margin:4px 0;font-size:12px;"><strong>Jira:</strong> <a href="%s">%s</a></p>`, url, *item.JiraIssueKey)
		}
		fmt.Fprintf(&rows, `
			<div style="margin-bottom:16px;padding:12px;background:#f9fafb;border-radius:6px;">
				<h3 style="margin:0 0 6px 0;font-size:15px;color:#111827;">%s %s</h3>
				<p style="margin:4px 0;font-size:13px;color:#6b7280;"><strong>Priority:</strong> %s &nbsp; <strong>Category:</strong> %s</p>
				%s
			</div>`,
			priorityEmoji(item.Priority), item.Text, item.Priority, item.Category, jiraLine)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333;background:#f3f4f6;margin:0;padding:0;">
	<div style="max-width:600px;margin:20px auto;background:white;border-radius:8px;overflow:hidden;">
		<div style="background:#667eea;padding:24px;text-align:center;">
			<h1 style="color:white;margin:0;font-size:22px;">📋 Your Action Items</h1>
		</div>
		<div style="padding:24px;">
			<p style="font-size:15px;">Hi %s,</p>
			<p style="font-size:13px;color:#6b7280;">You've been assigned <strong>%d action item(s)</strong> from the meeting <strong>%q</strong>.</p>
			%s
			<p style="font-size:11px;color:#9ca3af;border-top:1px solid #e5e7eb;padding-top:12px;">This is an automated email from your meeting assistant. Please do not reply.</p>
		</div>
	</div>
</body>
</html>`, assignee, len(items), meetingTitle, rows.String())
}

// buildMessage assembles a multipart/alternative MIME message with plain
// text and HTML parts
func buildMessage(from, to, subject, text, html string) []byte {
	const boundary = "meetwise-digest-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
