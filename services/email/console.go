package emailsvc

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
)

// consoleService prints messages instead of sending them. Used in development.
type consoleService struct {
	conf   *core.Config
	logger core.Logger
	out    *log.Logger // nil: no output

	mu   sync.Mutex
	sent []core.EmailMessage
	wg   sync.WaitGroup
	sync bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config, logger core.Logger) core.EmailService {
	return &consoleService{conf: conf, logger: logger, out: log.Default()}
}

// ConsoleServiceMock records messages synchronously without printing them.
type ConsoleServiceMock struct {
	*consoleService
}

func NewConsoleServiceMock(conf *core.Config) *ConsoleServiceMock {
	return &ConsoleServiceMock{&consoleService{conf: conf, logger: core.NopLogger(), sync: true}}
}

// SentMessages returns a copy of every message sent so far.
func (svc *ConsoleServiceMock) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage(nil), svc.sent...)
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if svc.sync {
			svc.sendMessage(msg)
			continue
		}
		svc.wg.Add(1)
		go func(msg *core.EmailMessage) {
			defer svc.wg.Done()
			svc.sendMessage(msg)
		}(msg)
	}
}

func (svc *consoleService) sendMessage(msg *core.EmailMessage) {
	if err := msg.Render(svc.conf); err != nil {
		svc.logger.Error("rendering email", errors.Wrap(err, msg.TemplateName))
		return
	}
	if !msg.HasRecipients() || !(msg.HasContent() || msg.HasAttachments()) {
		return
	}
	body, err := svc.format(*msg)
	if err != nil {
		svc.logger.Error("formatting email", err)
		return
	}
	if svc.out != nil {
		svc.out.Println(body)
	}
	svc.mu.Lock()
	svc.sent = append(svc.sent, *msg)
	svc.mu.Unlock()
}

// format builds a MIME rendition of msg.
func (svc *consoleService) format(msg core.EmailMessage) (string, error) {
	body := new(strings.Builder)
	header := func(k, v string) { _, _ = fmt.Fprintf(body, "%s: %s\r\n", k, v) }

	from := svc.conf.DefaultFromEmail()
	header("From", from.String())
	header("MIME-Version", "1.0")
	header("Date", core.NowFunc().Format(time.RFC1123Z))
	header("Subject", "["+svc.conf.AppName+"] "+msg.Subject)
	header("To", joinAddresses(msg.To))
	if len(msg.Cc) > 0 {
		header("CC", joinAddresses(msg.Cc))
	}
	if len(msg.Bcc) > 0 {
		header("BCC", joinAddresses(msg.Bcc))
	}

	altW := multipart.NewWriter(body)
	var mixedW *multipart.Writer
	if msg.HasAttachments() {
		mixedW = multipart.NewWriter(body)
		header("Content-Type", "multipart/mixed; boundary="+mixedW.Boundary())
		body.WriteString("\r\n")
		if _, err := mixedW.CreatePart(textproto.MIMEHeader{"Content-Type": {"multipart/alternative; boundary=" + altW.Boundary()}}); err != nil {
			return "", errors.Wrap(err, "creating multipart/alternative part")
		}
	} else {
		header("Content-Type", "multipart/alternative; boundary="+altW.Boundary())
		body.WriteString("\r\n")
	}

	parts := []struct{ ct, content string }{{"text/plain", msg.TextContent}}
	if msg.HTMLContent != "" {
		parts = append(parts, struct{ ct, content string }{"text/html", msg.HTMLContent})
	}
	for _, p := range parts {
		w, err := altW.CreatePart(textproto.MIMEHeader{"Content-Type": {p.ct}})
		if err != nil {
			return "", errors.Wrapf(err, "creating %s part", p.ct)
		}
		_, _ = fmt.Fprintf(w, "%s\r\n", p.content)
	}
	_ = altW.Close()

	if mixedW != nil {
		for _, at := range msg.Attachments {
			w, err := mixedW.CreatePart(textproto.MIMEHeader{
				"Content-Type":              {at.ContentType},
				"Content-Transfer-Encoding": {"base64"},
				"Content-Disposition":       {"attachment; filename=" + at.Filename},
			})
			if err != nil {
				return "", errors.Wrapf(err, "creating %s part", at.ContentType)
			}
			_, _ = fmt.Fprintf(w, "%s\r\n", at.Content.String())
		}
		_ = mixedW.Close()
	}
	return body.String(), nil
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
