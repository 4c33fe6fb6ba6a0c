package model

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/oneaiguru/wfm-optimization-core/internal/errs"
)

// requestEnvelopeSchema is the JSON shape a Request must satisfy before it
// is unmarshaled, the concrete mechanism behind spec.md §7's InvalidInput
// kind for malformed caller input (as opposed to a domain-level rejection
// raised later by a stage).
const requestEnvelopeSchema = `{
  "type": "object",
  "required": ["request_id", "start_date", "end_date", "service_id", "mode"],
  "properties": {
    "request_id": {"type": "string", "minLength": 1},
    "start_date": {"type": "string", "format": "date-time"},
    "end_date": {"type": "string", "format": "date-time"},
    "service_id": {"type": "string", "minLength": 1},
    "mode": {"type": "string", "enum": ["immediate_full", "phased", "pilot"]},
    "goals": {
      "type": "object",
      "additionalProperties": {"type": "number"}
    }
  }
}`

var requestEnvelopeLoader = gojsonschema.NewStringLoader(requestEnvelopeSchema)

// ValidateRequestEnvelope checks a raw JSON request body against the
// envelope schema before it is unmarshaled into a Request, so a malformed
// caller payload surfaces as an *errs.Error of kind InvalidInput with the
// validator's own field-level reasons attached, rather than a generic JSON
// unmarshal error or a zero-valued Request silently entering the pipeline.
func ValidateRequestEnvelope(raw []byte) error {
	result, err := gojsonschema.Validate(requestEnvelopeLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errs.Wrap(errs.InvalidInput, "request envelope is not valid JSON", err)
	}
	if result.Valid() {
		return nil
	}

	details := ""
	for i, e := range result.Errors() {
		if i > 0 {
			details += "; "
		}
		details += fmt.Sprintf("%s: %s", e.Field(), e.Description())
	}
	return errs.New(errs.InvalidInput, "request envelope failed schema validation").WithDetails(details)
}

// constraintConditionSchema is the JSON shape a ConstraintRule.Condition must
// satisfy when rules are loaded from an external source (e.g. a durable
// MetricsStore row whose condition column is stored as JSON rather than
// deserialized directly into a ConstraintPredicate).
const constraintConditionSchema = `{
  "type": "object",
  "required": ["kind"],
  "properties": {
    "kind": {"type": "string"},
    "hours_limit": {"type": "number"},
    "rest_hours": {"type": "number"},
    "days_limit": {"type": "integer"}
  }
}`

var constraintConditionLoader = gojsonschema.NewStringLoader(constraintConditionSchema)

// ValidateConstraintConditionJSON checks a raw JSON condition blob against
// the predicate envelope schema before it is decoded into a
// ConstraintPredicate (spec.md §4.3).
func ValidateConstraintConditionJSON(raw []byte) error {
	result, err := gojsonschema.Validate(constraintConditionLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errs.Wrap(errs.InvalidInput, "constraint condition is not valid JSON", err)
	}
	if result.Valid() {
		return nil
	}

	details := ""
	for i, e := range result.Errors() {
		if i > 0 {
			details += "; "
		}
		details += fmt.Sprintf("%s: %s", e.Field(), e.Description())
	}
	return errs.New(errs.InvalidInput, "constraint condition failed schema validation").WithDetails(details)
}
