package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// MXResolver is the part of *net.Resolver used for email domain checks.
type MXResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// EmailDomainChecker reports whether the domain of an address can receive
// mail: it has an MX record or at least resolves. A failed or timed out
// lookup counts as invalid.
type EmailDomainChecker struct {
	Resolver MXResolver
	Timeout  time.Duration
}

func NewEmailDomainChecker() *EmailDomainChecker {
	return &EmailDomainChecker{
		Resolver: net.DefaultResolver,
		Timeout:  3 * time.Second,
	}
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return strings.TrimSuffix(strings.ToLower(email[at+1:]), "."), true
}

func (c *EmailDomainChecker) Check(ctx context.Context, email string) bool {
	domain, ok := emailDomain(email)
	if !ok || domain == "" {
		return false
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if mx, err := c.Resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	hosts, err := c.Resolver.LookupHost(ctx, domain)
	return err == nil && len(hosts) > 0
}
