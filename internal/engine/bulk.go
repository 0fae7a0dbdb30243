package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"emailengine/internal/model"
	"emailengine/internal/sanitize"
	"emailengine/pkg/monitoring"
)

const prewarmBatchSize = 20

// ValidateBulk implements §4.14: pre-warm the domain-format/MX caches for
// every unique domain in the request, then validate addresses in ordered
// batches of BulkBatchSize with a delay between batches, honoring a global
// deadline. Grounded on the teacher's ValidateEmails jobs/results worker
// pool, generalized with explicit batching and a deadline clock instead of
// one all-at-once fan-out.
func (e *Engine) ValidateBulk(ctx context.Context, emails []string, opts Options) (model.BulkResult, error) {
	if len(emails) > e.MaxBulkSize {
		return model.BulkResult{}, model.ErrInvalidBulkSize
	}

	opts = opts.withDefaults()
	start := time.Now()

	monitoring.IncrementConcurrentBatches()
	defer monitoring.DecrementConcurrentBatches()
	defer func() {
		monitoring.RecordBatchMetrics(len(emails), time.Since(start))
	}()

	maxTimeout := e.BulkMaxTimeout
	if opts.MaxTimeoutMs > 0 {
		maxTimeout = time.Duration(opts.MaxTimeoutMs) * time.Millisecond
	}
	deadline := start.Add(maxTimeout)

	e.prewarmDomains(ctx, emails)

	total := len(emails)
	results := make([]model.ValidationResult, total)
	completed := 0
	timedOut := false

	for batchStart := 0; batchStart < total; batchStart += e.BulkBatchSize {
		if time.Until(deadline) < e.BulkMinTimeBuffer {
			timedOut = true
			break
		}

		batchEnd := batchStart + e.BulkBatchSize
		if batchEnd > total {
			batchEnd = total
		}

		batchResults := e.validateBatch(ctx, emails[batchStart:batchEnd], opts)
		copy(results[batchStart:batchEnd], batchResults)
		completed = batchEnd

		if opts.Progress != nil {
			opts.Progress(completed, total)
		}
		if batchEnd < total {
			time.Sleep(e.BulkBatchDelay)
		}
	}

	for i := completed; i < total; i++ {
		results[i] = timeoutPlaceholder(emails[i])
	}

	return model.BulkResult{
		Results: results,
		Metadata: model.BulkMetadata{
			Total:            total,
			Completed:        completed,
			TimedOut:         timedOut,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}, nil
}

// validateBatch runs every address in batch concurrently and returns
// results in the same order, substituting a timeout placeholder for any
// address that errors.
func (e *Engine) validateBatch(ctx context.Context, batch []string, opts Options) []model.ValidationResult {
	results := make([]model.ValidationResult, len(batch))

	var wg sync.WaitGroup
	wg.Add(len(batch))
	for i, addr := range batch {
		i, addr := i, addr
		go func() {
			defer wg.Done()
			r, err := e.Validate(ctx, addr, opts)
			if err != nil {
				r = timeoutPlaceholder(addr)
			}
			results[i] = r
		}()
	}
	wg.Wait()
	return results
}

func timeoutPlaceholder(email string) model.ValidationResult {
	return model.ValidationResult{
		Email:          email,
		Deliverability: model.DeliverabilityUnknown,
		Risk:           model.RiskHigh,
		Message:        "Validation timed out",
		Timestamp:      time.Now(),
	}
}

// prewarmDomains extracts the unique lowercased domains across emails and
// runs domain-format+MX probes for them in batches of prewarmBatchSize,
// concurrently, ignoring failures — they just mean a cold cache later.
func (e *Engine) prewarmDomains(ctx context.Context, emails []string) {
	seen := make(map[string]struct{})
	domains := make([]string, 0, len(emails))

	for _, raw := range emails {
		cleaned := sanitize.String(raw)
		at := strings.LastIndex(cleaned, "@")
		if at < 0 || at == len(cleaned)-1 {
			continue
		}
		domain := cleaned[at+1:]
		if _, dup := seen[domain]; dup {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}

	for batchStart := 0; batchStart < len(domains); batchStart += prewarmBatchSize {
		batchEnd := batchStart + prewarmBatchSize
		if batchEnd > len(domains) {
			batchEnd = len(domains)
		}
		batch := domains[batchStart:batchEnd]

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for _, domain := range batch {
			domain := domain
			go func() {
				defer wg.Done()
				e.checkDomainFormat(domain)
				e.checkMX(ctx, domain)
			}()
		}
		wg.Wait()
	}
}
