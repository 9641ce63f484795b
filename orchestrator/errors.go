package orchestrator

// ValidationError blocks a mutation entirely: nothing is written locally
// and no gateway call is issued. The message is shown next to the
// offending form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
