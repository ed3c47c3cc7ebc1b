// ABOUTME: Partial-update merge and field-level diff computation
// ABOUTME: Patches are merged over the JSON form so semantics match the wire format

package store

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// applyPatch merges a partial-field patch into a copy of entity and reports
// the field-level diff. The identity field is never overwritten. Only fields
// named in the patch whose new value differs from the old one appear in the
// diff, so an empty patch yields an empty diff and an unchanged entity.
func applyPatch[T any](entity T, patch map[string]any) (T, map[string]FieldChange, error) {
	var zero T

	raw, err := json.Marshal(entity)
	if err != nil {
		return zero, nil, fmt.Errorf("serializing entity: %w", err)
	}
	var current map[string]any
	if err := json.Unmarshal(raw, &current); err != nil {
		return zero, nil, fmt.Errorf("decoding entity: %w", err)
	}

	// Round-trip the patch through JSON so its values compare against the
	// entity's fields in the same representation (numbers as float64, etc.).
	rawPatch, err := json.Marshal(patch)
	if err != nil {
		return zero, nil, &ValidationError{Message: fmt.Sprintf("invalid update payload: %v", err)}
	}
	var normalized map[string]any
	if err := json.Unmarshal(rawPatch, &normalized); err != nil {
		return zero, nil, &ValidationError{Message: fmt.Sprintf("invalid update payload: %v", err)}
	}

	diff := make(map[string]FieldChange)
	for key, newValue := range normalized {
		if key == "id" {
			continue
		}
		oldValue := current[key]
		if !reflect.DeepEqual(oldValue, newValue) {
			diff[key] = FieldChange{Old: oldValue, New: newValue}
		}
		current[key] = newValue
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return zero, nil, fmt.Errorf("serializing merged entity: %w", err)
	}
	var updated T
	if err := json.Unmarshal(merged, &updated); err != nil {
		return zero, nil, &ValidationError{Message: fmt.Sprintf("update does not fit entity shape: %v", err)}
	}
	return updated, diff, nil
}

// diffFields compares two entities of the same type field by field over their
// JSON form. Used for the company singleton, where the caller supplies a full
// replacement rather than a patch.
func diffFields[T any](oldEntity, newEntity T) map[string]FieldChange {
	oldMap := toMap(oldEntity)
	newMap := toMap(newEntity)

	diff := make(map[string]FieldChange)
	for key, newValue := range newMap {
		if key == "id" {
			continue
		}
		if !reflect.DeepEqual(oldMap[key], newValue) {
			diff[key] = FieldChange{Old: oldMap[key], New: newValue}
		}
	}
	return diff
}

func toMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
