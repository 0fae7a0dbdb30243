package smtp

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"
)

type pipeDialer struct {
	script func(server net.Conn)
}

func (d pipeDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	client, server := net.Pipe()
	go d.script(server)
	return client, nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(domain string) bool { return true }

// serverScript drives a minimal SMTP dialog, replying to RCPT TO for the
// random probe address with randomCode and to every other RCPT TO with
// realCode.
func serverScript(randomCode, realCode int) func(net.Conn) {
	return func(conn net.Conn) {
		defer conn.Close()
		r := bufio.NewReader(conn)
		w := conn

		write := func(s string) { w.Write([]byte(s + "\r\n")) }
		readLine := func() string {
			line, err := r.ReadString('\n')
			if err != nil {
				return ""
			}
			return strings.TrimSpace(line)
		}

		write("220 mx.example.com ESMTP")
		for {
			line := readLine()
			if line == "" {
				return
			}
			upper := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(upper, "EHLO"):
				write("250 mx.example.com")
			case strings.HasPrefix(upper, "HELO"):
				write("250 mx.example.com")
			case strings.HasPrefix(upper, "MAIL FROM"):
				write("250 OK")
			case strings.HasPrefix(upper, "RCPT TO"):
				if strings.Contains(line, "probe-") {
					write(responseLine(randomCode))
				} else {
					write(responseLine(realCode))
				}
			case strings.HasPrefix(upper, "RSET"):
				write("250 OK")
			case strings.HasPrefix(upper, "QUIT"):
				write("221 Bye")
				return
			default:
				write("500 unrecognized command")
			}
		}
	}
}

func responseLine(code int) string {
	switch code {
	case 250:
		return "250 OK"
	case 251:
		return "251 User not local, will forward"
	case 550:
		return "550 No such user"
	case 450:
		return "450 Mailbox busy"
	case 252:
		return "252 Cannot verify but will accept"
	default:
		return "451 Requested action aborted"
	}
}

func newTestProber(script func(net.Conn)) *Prober {
	return &Prober{
		Dialer:         pipeDialer{script: script},
		Limiter:        allowAllLimiter{},
		OverallTimeout: 2 * time.Second,
	}
}

func TestProbeMailboxExists(t *testing.T) {
	p := newTestProber(serverScript(550, 250))
	result := p.Probe(context.Background(), "user@example.com", []string{"mx.example.com"})

	if result.Exists != "true" {
		t.Fatalf("Exists = %q, want true", result.Exists)
	}
	if result.CatchAll {
		t.Error("CatchAll = true, want false")
	}
}

func TestProbeMailboxDoesNotExist(t *testing.T) {
	p := newTestProber(serverScript(550, 550))
	result := p.Probe(context.Background(), "nobody@example.com", []string{"mx.example.com"})

	if result.Exists != "false" {
		t.Fatalf("Exists = %q, want false", result.Exists)
	}
}

func TestProbeCatchAll(t *testing.T) {
	p := newTestProber(serverScript(250, 250))
	result := p.Probe(context.Background(), "user@example.com", []string{"mx.example.com"})

	if result.Exists != "unknown" || !result.CatchAll {
		t.Fatalf("result = %+v, want unknown+catchAll", result)
	}
}

func TestProbeGreylisted(t *testing.T) {
	p := newTestProber(serverScript(550, 450))
	result := p.Probe(context.Background(), "user@example.com", []string{"mx.example.com"})

	if result.Exists != "unknown" || !result.Greylisted {
		t.Fatalf("result = %+v, want unknown+greylisted", result)
	}
}

func TestProbeRateLimited(t *testing.T) {
	p := newTestProber(serverScript(550, 250))
	p.Limiter = blockAllLimiter{}

	result := p.Probe(context.Background(), "user@example.com", []string{"mx.example.com"})
	if result.Exists != "unknown" || !strings.Contains(result.Message, "Rate limited") {
		t.Fatalf("result = %+v, want rate-limited message", result)
	}
}

type blockAllLimiter struct{}

func (blockAllLimiter) Allow(domain string) bool { return false }

func TestProbeSkipsARecordFallbackHost(t *testing.T) {
	p := newTestProber(serverScript(550, 250))
	result := p.Probe(context.Background(), "user@example.com", []string{"[A record fallback]"})

	if result.State != "failed" {
		t.Fatalf("state = %v, want failed when only an A-record fallback host is available", result.State)
	}
}
