package engine

import (
	"context"
	"testing"
	"time"

	"emailengine/internal/model"
	"emailengine/internal/sanitize"
)

func TestValidateBulkOrderAndCounts(t *testing.T) {
	resolver := stubResolver{mx: map[string][]string{
		"gmail.com": {"10 gmail-smtp-in.l.google.com."},
		"yahoo.com": {"10 mx.yahoo.com."},
	}}
	e := newTestEngine(resolver)

	report := sanitize.Batch([]string{"a@gmail.com", "a@gmail.com", "", "b@yahoo.com"}, 0)
	if report.DuplicatesRemoved != 1 || report.InvalidRemoved != 1 {
		t.Fatalf("report = %+v, want 1 duplicate and 1 invalid removed", report)
	}
	if len(report.Emails) != 2 {
		t.Fatalf("Emails = %v, want 2 entries", report.Emails)
	}

	bulk, err := e.ValidateBulk(context.Background(), report.Emails, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bulk.Metadata.Total != 2 || bulk.Metadata.Completed != 2 {
		t.Errorf("Metadata = %+v, want total=2 completed=2", bulk.Metadata)
	}
	if len(bulk.Results) != 2 {
		t.Fatalf("Results len = %d, want 2", len(bulk.Results))
	}
	if bulk.Results[0].Email != "a@gmail.com" || bulk.Results[1].Email != "b@yahoo.com" {
		t.Errorf("Results out of order: %+v", bulk.Results)
	}
}

func TestValidateBulkRejectsOversizedRequest(t *testing.T) {
	e := newTestEngine(stubResolver{})
	e.MaxBulkSize = 3

	_, err := e.ValidateBulk(context.Background(), []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}, DefaultOptions())
	if err != model.ErrInvalidBulkSize {
		t.Errorf("err = %v, want ErrInvalidBulkSize", err)
	}
}

func TestValidateBulkProgressCallbackFiresPerBatch(t *testing.T) {
	resolver := stubResolver{mx: map[string][]string{"example.com": {"10 mx.example.com."}}}
	e := newTestEngine(resolver)
	e.BulkBatchSize = 50
	e.BulkBatchDelay = time.Millisecond

	emails := make([]string, 125)
	for i := range emails {
		emails[i] = "user@example.com"
	}

	var progressCalls []int
	opts := DefaultOptions()
	opts.Progress = func(completed, total int) {
		progressCalls = append(progressCalls, completed)
	}

	bulk, err := e.ValidateBulk(context.Background(), emails, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bulk.Metadata.Completed != 125 {
		t.Errorf("Completed = %d, want 125", bulk.Metadata.Completed)
	}

	want := []int{50, 100, 125}
	if len(progressCalls) != len(want) {
		t.Fatalf("progressCalls = %v, want %v", progressCalls, want)
	}
	for i, w := range want {
		if progressCalls[i] != w {
			t.Errorf("progressCalls[%d] = %d, want %d", i, progressCalls[i], w)
		}
	}
}

func TestValidateBulkGlobalDeadlineStopsEarly(t *testing.T) {
	resolver := stubResolver{mx: map[string][]string{"example.com": {"10 mx.example.com."}}}
	e := newTestEngine(resolver)
	e.BulkBatchSize = 1
	e.BulkBatchDelay = 0
	e.BulkMaxTimeout = 0
	e.BulkMinTimeBuffer = time.Millisecond

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	bulk, err := e.ValidateBulk(context.Background(), emails, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bulk.Metadata.TimedOut {
		t.Error("TimedOut = false, want true given a deadline narrower than the min time buffer")
	}
	if bulk.Metadata.Completed >= len(emails) {
		t.Errorf("Completed = %d, want fewer than %d given the early deadline", bulk.Metadata.Completed, len(emails))
	}
	for i := bulk.Metadata.Completed; i < len(emails); i++ {
		if bulk.Results[i].Message != "Validation timed out" {
			t.Errorf("Results[%d].Message = %q, want placeholder", i, bulk.Results[i].Message)
		}
	}
}
