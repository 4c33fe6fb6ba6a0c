package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oneaiguru/wfm-optimization-core/internal/errs"
)

func TestValidateRequestEnvelope_Valid(t *testing.T) {
	raw := []byte(`{
		"request_id": "req-1",
		"start_date": "2026-08-03T00:00:00Z",
		"end_date": "2026-08-10T00:00:00Z",
		"service_id": "svc-1",
		"mode": "phased",
		"goals": {"cost": -0.1}
	}`)
	assert.NoError(t, ValidateRequestEnvelope(raw))
}

func TestValidateRequestEnvelope_MissingRequiredField(t *testing.T) {
	raw := []byte(`{"start_date": "2026-08-03T00:00:00Z", "end_date": "2026-08-10T00:00:00Z", "service_id": "svc-1", "mode": "phased"}`)
	err := ValidateRequestEnvelope(raw)
	assert.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidInput))
}

func TestValidateRequestEnvelope_InvalidMode(t *testing.T) {
	raw := []byte(`{
		"request_id": "req-1",
		"start_date": "2026-08-03T00:00:00Z",
		"end_date": "2026-08-10T00:00:00Z",
		"service_id": "svc-1",
		"mode": "not-a-real-mode"
	}`)
	err := ValidateRequestEnvelope(raw)
	assert.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidInput))
}

func TestValidateRequestEnvelope_MalformedJSON(t *testing.T) {
	err := ValidateRequestEnvelope([]byte(`{not json`))
	assert.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidInput))
}

func TestValidateConstraintConditionJSON_Valid(t *testing.T) {
	raw := []byte(`{"kind": "weekly_hours_over", "hours_limit": 20}`)
	assert.NoError(t, ValidateConstraintConditionJSON(raw))
}

func TestValidateConstraintConditionJSON_MissingKind(t *testing.T) {
	raw := []byte(`{"hours_limit": 20}`)
	err := ValidateConstraintConditionJSON(raw)
	assert.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidInput))
}
