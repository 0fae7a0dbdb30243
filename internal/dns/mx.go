package dns

import (
	"context"
	"strconv"
	"strings"
)

// fallbackRecord is recorded when a domain has no MX records but does
// resolve an A record, per §4.4.
const fallbackRecord = "[A record fallback]"

// MXHosts resolves domain's MX records and returns bare hostnames (priority
// stripped, trailing dot stripped). When no MX records exist, it falls back
// to an A-record existence check and reports a synthetic single-entry list.
func MXHosts(ctx context.Context, resolver Resolver, domain string) (hosts []string, ok bool, err error) {
	result, err := resolver.Query(ctx, domain, TypeMX)
	if err != nil {
		return nil, false, err
	}
	if !result.Success {
		return nil, false, nil
	}

	if len(result.Records) > 0 {
		return parseMXRecords(result.Records), true, nil
	}

	aResult, err := resolver.Query(ctx, domain, TypeA)
	if err != nil {
		return nil, false, err
	}
	if !aResult.Success || len(aResult.Records) == 0 {
		return nil, false, nil
	}
	return []string{fallbackRecord}, true, nil
}

// parseMXRecords extracts hostnames from "priority hostname." answers,
// sorted by ascending priority, stripping the trailing dot.
func parseMXRecords(records []string) []string {
	type entry struct {
		priority int
		host     string
	}
	entries := make([]entry, 0, len(records))

	for _, rec := range records {
		fields := strings.Fields(rec)
		if len(fields) != 2 {
			continue
		}
		priority, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		entries = append(entries, entry{priority: priority, host: strings.TrimSuffix(fields[1], ".")})
	}

	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].priority < entries[j-1].priority; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	hosts := make([]string, len(entries))
	for i, e := range entries {
		hosts[i] = e.host
	}
	return hosts
}
