// Package notification delivers payslip emails.
package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

type Recipient struct {
	Name  string
	Email string
}

type PayslipMail struct {
	To           Recipient
	CompanyName  string
	EmployeeCode string
	Period       string
	NetSalary    string
	FileName     string
	Attachment   []byte
}

// Result is what a delivery attempt reports back. A failed attempt carries Error and no MessageID.
type Result struct {
	Success   bool
	MessageID string
	Error     string
}

func Failed(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

type mailData struct {
	CompanyName  string
	EmployeeName string
	EmployeeCode string
	Period       string
	NetSalary    string
	Bulk         bool
}

type SMTPNotifier struct {
	cfg       SMTPConfig
	templates *template.Template
	logger    *zap.Logger
	dialer    net.Dialer
}

func NewSMTPNotifier(cfg SMTPConfig, logger ...*zap.Logger) (*SMTPNotifier, error) {
	l := zap.L().Named("notification.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.smtp")
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &SMTPNotifier{
		cfg:       cfg,
		templates: tmpl,
		logger:    l,
		dialer:    net.Dialer{Timeout: 10 * time.Second},
	}, nil
}

// SendPayslip never returns an error: transport failures are reported in the Result.
func (n *SMTPNotifier) SendPayslip(ctx context.Context, mail PayslipMail, bulk bool) Result {
	if strings.TrimSpace(mail.To.Email) == "" {
		return Result{Error: "Employee email not found"}
	}

	var body bytes.Buffer
	err := n.templates.ExecuteTemplate(&body, "payslip.html", mailData{
		CompanyName:  mail.CompanyName,
		EmployeeName: mail.To.Name,
		EmployeeCode: mail.EmployeeCode,
		Period:       mail.Period,
		NetSalary:    mail.NetSalary,
		Bulk:         bulk,
	})
	if err != nil {
		return Failed(fmt.Errorf("render email template: %w", err))
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(n.cfg.From))
	subject := fmt.Sprintf("Payslip for %s - %s", mail.Period, mail.EmployeeCode)
	msg, err := buildMessage(n.cfg.FromName, n.cfg.From, mail.To, subject, messageID, body.String(), mail.FileName, mail.Attachment)
	if err != nil {
		return Failed(err)
	}

	if err := n.deliver(ctx, mail.To.Email, msg); err != nil {
		n.logger.Warn("payslip email failed",
			zap.String("employee_code", mail.EmployeeCode),
			zap.Bool("bulk", bulk),
			zap.Error(err),
		)
		return Failed(err)
	}

	n.logger.Info("payslip email sent",
		zap.String("employee_code", mail.EmployeeCode),
		zap.String("message_id", messageID),
		zap.Bool("bulk", bulk),
	)
	return Result{Success: true, MessageID: messageID}
}

func (n *SMTPNotifier) deliver(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprintf("%d", n.cfg.Port))
	conn, err := n.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if n.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
			return err
		}
	}
	if n.cfg.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)); err != nil {
			return err
		}
	}
	if err := client.Mail(n.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(fromName, from string, to Recipient, subject, messageID, html, fileName string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	headers := []string{
		"From: " + mime.QEncoding.Encode("utf-8", fromName) + " <" + from + ">",
		"To: " + mime.QEncoding.Encode("utf-8", to.Name) + " <" + to.Email + ">",
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Message-ID: " + messageID,
		"Date: " + time.Now().Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: multipart/mixed; boundary=" + mw.Boundary(),
		"",
		"",
	}
	out := bytes.NewBufferString(strings.Join(headers, "\r\n"))

	part, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(html)); err != nil {
		return nil, err
	}

	if len(attachment) > 0 {
		part, err = mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf(`attachment; filename="%s"`, fileName)},
		})
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(attachment)
		for len(encoded) > 76 {
			if _, err := part.Write([]byte(encoded[:76] + "\r\n")); err != nil {
				return nil, err
			}
			encoded = encoded[76:]
		}
		if _, err := part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	out.Write(buf.Bytes())
	return out.Bytes(), nil
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}

// LogNotifier is used when SMTP is disabled. It logs the payslip and reports success.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) SendPayslip(_ context.Context, mail PayslipMail, bulk bool) Result {
	if strings.TrimSpace(mail.To.Email) == "" {
		return Result{Error: "Employee email not found"}
	}
	id := "log-" + uuid.NewString()
	n.logger.Info("payslip email skipped, smtp disabled",
		zap.String("to", mail.To.Email),
		zap.String("employee_code", mail.EmployeeCode),
		zap.String("period", mail.Period),
		zap.Int("attachment_bytes", len(mail.Attachment)),
		zap.Bool("bulk", bulk),
		zap.String("message_id", id),
	)
	return Result{Success: true, MessageID: id}
}
