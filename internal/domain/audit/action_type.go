package audit

// ActionType enumerates the auditable client actions. The set is fixed;
// extending it means adding a new constant together with its rendering
// branch in render.go so new types never fall through to the generic
// fallback silently.
type ActionType string

const (
	ActionCreateForm                ActionType = "create_form"
	ActionEditForm                  ActionType = "edit_form"
	ActionActivateForm              ActionType = "activate_form"
	ActionInactivateForm            ActionType = "inactivate_form"
	ActionDeleteForm                ActionType = "delete_form"
	ActionAiAnalysis                ActionType = "ai_analysis"
	ActionExcludeFeedback           ActionType = "exclude_feedback"
	ActionDuplicateForm             ActionType = "duplicate_form"
	ActionEditStyleForm             ActionType = "edit_style_form"
	ActionScheduledFormInactivation ActionType = "scheduled_form_inactivation"
	ActionMigratePlan               ActionType = "migrate_plan"
	ActionEditQrCode                ActionType = "edit_qr_code"
)

// String returns the string representation of ActionType
func (a ActionType) String() string {
	return string(a)
}

// IsValid returns true if the action type is one of the enumerated values
func (a ActionType) IsValid() bool {
	switch a {
	case ActionCreateForm, ActionEditForm, ActionActivateForm,
		ActionInactivateForm, ActionDeleteForm, ActionAiAnalysis,
		ActionExcludeFeedback, ActionDuplicateForm, ActionEditStyleForm,
		ActionScheduledFormInactivation, ActionMigratePlan, ActionEditQrCode:
		return true
	}
	return false
}

// Label returns the short human-readable label for the action type.
// Unrecognized values get a generic label rather than an error.
func (a ActionType) Label() string {
	switch a {
	case ActionCreateForm:
		return "Form created"
	case ActionEditForm:
		return "Form edited"
	case ActionActivateForm:
		return "Form activated"
	case ActionInactivateForm:
		return "Form inactivated"
	case ActionDeleteForm:
		return "Form deleted"
	case ActionAiAnalysis:
		return "AI analysis generated"
	case ActionExcludeFeedback:
		return "Feedback excluded"
	case ActionDuplicateForm:
		return "Form duplicated"
	case ActionEditStyleForm:
		return "Form style edited"
	case ActionScheduledFormInactivation:
		return "Form inactivation scheduled"
	case ActionMigratePlan:
		return "Plan migrated"
	case ActionEditQrCode:
		return "QR code edited"
	default:
		return "Client action"
	}
}

// ParseActionType parses s into an ActionType, reporting whether it is one
// of the enumerated values.
func ParseActionType(s string) (ActionType, bool) {
	a := ActionType(s)
	return a, a.IsValid()
}
