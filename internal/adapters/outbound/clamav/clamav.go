// Package clamav implements the antivirus oracle against a clamd daemon.
package clamav

import (
	"bytes"
	"context"
	"fmt"

	clamd "github.com/dutchcoders/go-clamd"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// Oracle implements domain.AntivirusOracle over the clamd stream protocol.
type Oracle struct {
	client *clamd.Clamd
}

// New creates a clamd-backed oracle. address is a unix socket path
// ("/var/run/clamav/clamd.ctl") or a "tcp://host:port" URL.
func New(address string) *Oracle {
	return &Oracle{client: clamd.NewClamd(address)}
}

// Ping reports whether the daemon is reachable.
func (o *Oracle) Ping() error {
	if err := o.client.Ping(); err != nil {
		return fmt.Errorf("%w: clamd ping: %v", domain.ErrOracleUnavailable, err)
	}
	return nil
}

// Scan streams content to clamd. An unreachable daemon surfaces as
// ErrOracleUnavailable so the malware stage treats it as skipped.
func (o *Oracle) Scan(ctx context.Context, content []byte) (domain.ScanVerdict, error) {
	abort := make(chan bool)
	defer close(abort)

	results, err := o.client.ScanStream(bytes.NewReader(content), abort)
	if err != nil {
		return domain.ScanVerdict{}, fmt.Errorf("%w: clamd scan: %v", domain.ErrOracleUnavailable, err)
	}

	select {
	case res, ok := <-results:
		if !ok || res == nil {
			return domain.ScanVerdict{}, nil
		}
		if res.Status == clamd.RES_FOUND {
			return domain.ScanVerdict{Infected: true, Signature: res.Description}, nil
		}
		return domain.ScanVerdict{}, nil
	case <-ctx.Done():
		return domain.ScanVerdict{}, ctx.Err()
	}
}
