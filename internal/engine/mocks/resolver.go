// Package mocks holds testify mock.Mock implementations for internal/engine's
// collaborator interfaces, mirroring the teacher's
// tests/unit/service/mocks/service_mocks.go shape: one mock type per
// interface, used by the external engine_test package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"emailengine/internal/dns"
)

// Resolver is a testify mock.Mock implementation of dns.Resolver.
type Resolver struct {
	mock.Mock
}

func (m *Resolver) Query(ctx context.Context, domain string, rtype dns.RecordType) (dns.Result, error) {
	args := m.Called(ctx, domain, rtype)
	result, _ := args.Get(0).(dns.Result)
	return result, args.Error(1)
}
