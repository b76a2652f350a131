package services

// ValidationError reports a rejected input. It is the only error kind the
// product service produces; handlers send its message verbatim as the
// response body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
