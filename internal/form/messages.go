package form

// --- Messages ---

// LoadedMsg carries the result of the initial fetch in edit mode.
type LoadedMsg struct {
	ScreenID string
	Values   Values
	Err      error
}

// InitializedMsg ends the first-render window after data is in place.
type InitializedMsg struct {
	ScreenID string
}

// SubmittedMsg carries the outcome of a create or update dispatch.
type SubmittedMsg struct {
	ScreenID string
	Result   any
	Err      error
}

// NotifyLevel is the severity of a NotifyMsg.
type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

// NotifyMsg asks the host to show a transient notification.
type NotifyMsg struct {
	Level NotifyLevel
	Text  string
}
