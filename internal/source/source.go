package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/0xPuncker/taskboard/pkg/types"
)

// Fallback names where a degraded dataset came from.
type Fallback string

const (
	FallbackNone  Fallback = ""
	FallbackCache Fallback = "cache"
	FallbackMock  Fallback = "mock"
	FallbackEmpty Fallback = "empty"
)

// Dataset is the result of one acquisition.
type Dataset struct {
	Records []types.JobRecord
	// Groups, Title, Subtitle and Footer are only set by a group config.
	Groups   []types.GroupSpec
	Title    string
	Subtitle string
	Footer   string

	Origin   string
	Fallback Fallback
}

// Source acquires the records for one generation run.
type Source interface {
	Fetch(ctx context.Context) (*Dataset, error)
	Name() string
}

// AcquisitionError wraps any failure to obtain job data.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("failed to acquire jobs from %s: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// DecodeJobs parses a `{"jobs": [...]}` document. A record that does not
// decode is replaced by a placeholder so the rest of the list survives.
func DecodeJobs(data []byte, logger *logrus.Logger) ([]types.JobRecord, error) {
	var list types.JobList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse job list: %w", err)
	}

	records := make([]types.JobRecord, 0, len(list.Jobs))
	for i, raw := range list.Jobs {
		var r types.JobRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			logger.WithFields(logrus.Fields{
				"index": i,
				"error": err.Error(),
			}).Warn("Malformed job record, using placeholder")
			r = placeholder(raw)
		}
		records = append(records, r)
	}

	return records, nil
}

// placeholder salvages the flat fields of a record whose nested data is
// unusable.
func placeholder(raw json.RawMessage) types.JobRecord {
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)
	return salvageRecord(fields)
}

// salvageRecord keeps the scalar fields that still have the expected type.
func salvageRecord(fields map[string]any) types.JobRecord {
	str := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := fields[k].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}

	r := types.JobRecord{
		ID:          str("id", "cronId"),
		Name:        str("name"),
		Status:      types.Status(strings.ToLower(strings.TrimSpace(str("status")))),
		Owner:       str("owner", "agentId", "bird"),
		Description: str("description"),
	}
	if enabled, ok := fields["enabled"].(bool); ok {
		r.Enabled = enabled
	}
	return r
}
