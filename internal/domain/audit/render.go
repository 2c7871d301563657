package audit

import (
	"fmt"
	"strconv"
)

// Render turns an entry's payload into a human-readable observation.
// It never fails: a missing, malformed or incomplete payload degrades to the
// action type's generic fallback sentence, and an unrecognized action type
// renders as a generic string.
func Render(entry *ActionLog) string {
	d := entry.Details

	switch entry.ActionType {
	case ActionCreateForm:
		if name, ok := stringField(d, "form_name"); ok {
			return fmt.Sprintf("Created the form %q.", name)
		}
	case ActionEditForm:
		if name, ok := stringField(d, "form_name"); ok {
			return fmt.Sprintf("Edited the form %q.", name)
		}
	case ActionActivateForm:
		if name, ok := stringField(d, "form_name"); ok {
			if method, ok := stringField(d, "activation_method"); ok {
				return fmt.Sprintf("Activated the form %q via %s.", name, method)
			}
			return fmt.Sprintf("Activated the form %q.", name)
		}
	case ActionInactivateForm:
		if name, ok := stringField(d, "form_name"); ok {
			if reason, ok := stringField(d, "reason"); ok {
				return fmt.Sprintf("Inactivated the form %q: %s.", name, reason)
			}
			return fmt.Sprintf("Inactivated the form %q.", name)
		}
	case ActionDeleteForm:
		if name, ok := stringField(d, "form_name"); ok {
			return fmt.Sprintf("Deleted the form %q.", name)
		}
	case ActionAiAnalysis:
		if name, ok := stringField(d, "form_name"); ok {
			return fmt.Sprintf("Generated an AI analysis report for the form %q.", name)
		}
	case ActionExcludeFeedback:
		if count, ok := intField(d, "deleted_count"); ok {
			if name, nameOK := stringField(d, "form_name"); nameOK {
				return fmt.Sprintf("Excluded %d feedback responses from the form %q.", count, name)
			}
			return fmt.Sprintf("Excluded %d feedback responses.", count)
		}
	case ActionDuplicateForm:
		original, hasOriginal := stringField(d, "original_name_form")
		duplicate, hasDuplicate := stringField(d, "new_form_name")
		if hasOriginal && hasDuplicate {
			return fmt.Sprintf("Duplicated the form %q as %q.", original, duplicate)
		}
	case ActionEditStyleForm:
		if name, ok := stringField(d, "form_name"); ok {
			return fmt.Sprintf("Edited the style of the form %q.", name)
		}
	case ActionScheduledFormInactivation:
		if name, ok := stringField(d, "form_name"); ok {
			if date, ok := stringField(d, "scheduled_for"); ok {
				return fmt.Sprintf("Scheduled the form %q for inactivation on %s.", name, date)
			}
			return fmt.Sprintf("Scheduled the form %q for inactivation.", name)
		}
	case ActionMigratePlan:
		previous, hasPrevious := stringField(d, "previous_plan")
		next, hasNext := stringField(d, "new_plan")
		if hasPrevious && hasNext {
			return fmt.Sprintf("Migrated the plan from %q to %q.", previous, next)
		}
	case ActionEditQrCode:
		if name, ok := stringField(d, "form_name"); ok {
			return fmt.Sprintf("Edited the QR code of the form %q.", name)
		}
	default:
		return "Client action recorded."
	}

	return fallback(entry.ActionType)
}

// fallback is the per-type generic sentence used when the payload does not
// carry the expected fields.
func fallback(actionType ActionType) string {
	return fmt.Sprintf("%s (no further details recorded).", actionType.Label())
}

func stringField(d Details, key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// intField tolerates the numeric types a JSON payload may decode into.
func intField(d Details, key string) (int64, bool) {
	if d == nil {
		return 0, false
	}
	switch v := d[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
