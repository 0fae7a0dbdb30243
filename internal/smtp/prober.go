// Package smtp implements the engine's SMTP prober (C7): a real mailbox
// existence check over a live SMTP dialog. The dialog itself follows
// mailvetter's lookup package (net/textproto reads over a raw net.Conn,
// explicit response-code inspection rather than net/smtp's opaque errors),
// generalized from a single RCPT probe to the full catch-all/greylist
// dialog the contract requires.
package smtp

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"emailengine/internal/model"
)

const (
	heloHost   = "mx.emailengine.local"
	probeSender = "probe@emailengine.local"
)

var smtpPorts = []int{25, 587}

const maxRetriesPerHost = 2

// Dialer opens a TCP connection, injectable so tests never touch the
// network.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Limiter gates outbound probes per remote domain.
type Limiter interface {
	Allow(domain string) bool
}

// Prober runs the SMTP mailbox-existence dialog.
type Prober struct {
	Dialer         Dialer
	Limiter        Limiter
	OverallTimeout time.Duration
}

// NewProber builds a Prober using net.Dialer for transport.
func NewProber(limiter Limiter, overallTimeout time.Duration) *Prober {
	return &Prober{
		Dialer:         &net.Dialer{},
		Limiter:        limiter,
		OverallTimeout: overallTimeout,
	}
}

// Probe verifies mailbox existence for email across mxHosts (typically the
// first three, in priority order), returning the first definitive answer.
func (p *Prober) Probe(ctx context.Context, email string, mxHosts []string) model.SMTPCheck {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return model.SMTPCheck{State: model.ProbeFailed, Exists: "unknown", Message: "malformed address"}
	}
	domain := email[at+1:]

	if p.Limiter != nil && !p.Limiter.Allow(domain) {
		return model.SMTPCheck{State: model.ProbeOK, Exists: "unknown", Message: "Rate limited for this domain"}
	}

	ctx, cancel := context.WithTimeout(ctx, p.OverallTimeout)
	defer cancel()

	for _, host := range mxHosts {
		if host == "[A record fallback]" {
			continue
		}
		for _, port := range smtpPorts {
			for attempt := 0; attempt <= maxRetriesPerHost; attempt++ {
				check, definitive := p.dialOnce(ctx, host, port, email, domain)
				if definitive {
					return check
				}
				select {
				case <-ctx.Done():
					return model.SMTPCheck{State: model.ProbeFailed, Exists: "unknown", Message: "probe timed out"}
				default:
				}
			}
		}
	}

	return model.SMTPCheck{State: model.ProbeFailed, Exists: "unknown", Message: "no reachable mail server"}
}

// dialOnce runs the full dialog against one host:port and classifies the
// result. definitive is false when the attempt should be retried (transient
// connection failure) rather than treated as a probe answer.
func (p *Prober) dialOnce(ctx context.Context, host string, port int, email, domain string) (model.SMTPCheck, bool) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := p.Dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return model.SMTPCheck{}, false
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	tp := textproto.NewConn(conn)
	defer tp.Close()

	if _, _, err := tp.ReadResponse(220); err != nil {
		return model.SMTPCheck{}, false
	}

	if err := p.greet(tp); err != nil {
		return model.SMTPCheck{}, false
	}

	if _, err := tp.Cmd("MAIL FROM:<%s>", probeSender); err != nil {
		return model.SMTPCheck{}, false
	}
	if _, _, err := tp.ReadResponse(250); err != nil {
		return model.SMTPCheck{}, false
	}

	randomAddr := randomLocalPart() + "@" + domain
	randomCode := p.rcpt(tp, randomAddr)

	tp.Cmd("RSET")
	tp.ReadResponse(250)

	if _, err := tp.Cmd("MAIL FROM:<%s>", probeSender); err != nil {
		return model.SMTPCheck{}, false
	}
	if _, _, err := tp.ReadResponse(250); err != nil {
		return model.SMTPCheck{}, false
	}

	realCode := p.rcpt(tp, email)

	tp.Cmd("QUIT")

	return classify(realCode, randomCode), true
}

func (p *Prober) greet(tp *textproto.Conn) error {
	if _, err := tp.Cmd("EHLO %s", heloHost); err != nil {
		return err
	}
	if _, _, err := tp.ReadResponse(250); err == nil {
		return nil
	}
	if _, err := tp.Cmd("HELO %s", heloHost); err != nil {
		return err
	}
	_, _, err := tp.ReadResponse(250)
	return err
}

// rcpt issues RCPT TO and returns the response code, or 0 if the command
// itself could not be sent/read.
func (p *Prober) rcpt(tp *textproto.Conn, address string) int {
	if _, err := tp.Cmd("RCPT TO:<%s>", address); err != nil {
		return 0
	}
	code, _, err := tp.ReadResponse(0)
	if err != nil {
		if textErr, ok := err.(*textproto.Error); ok {
			return textErr.Code
		}
		return 0
	}
	return code
}

// classify implements §4.9 step 5's response-code interpretation.
func classify(realCode, randomCode int) model.SMTPCheck {
	switch {
	case realCode == 250 || realCode == 251:
		if randomCode == 250 || randomCode == 251 {
			return model.SMTPCheck{State: model.ProbeOK, Exists: "unknown", CatchAll: true}
		}
		return model.SMTPCheck{State: model.ProbeOK, Exists: "true"}
	case realCode == 550 || realCode == 551 || realCode == 553 || realCode == 554:
		return model.SMTPCheck{State: model.ProbeOK, Exists: "false"}
	case realCode == 450 || realCode == 451 || realCode == 452:
		return model.SMTPCheck{State: model.ProbeOK, Exists: "unknown", Greylisted: true}
	case realCode == 252:
		return model.SMTPCheck{State: model.ProbeOK, Exists: "unknown", Message: "server accepts but will not verify"}
	default:
		return model.SMTPCheck{State: model.ProbeOK, Exists: "unknown", Message: fmt.Sprintf("unexpected response code %d", realCode)}
	}
}

func randomLocalPart() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return "probe-" + string(b)
}
