package domain

// ValidationError means required input was absent. It is raised before any
// network call and maps to HTTP 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UpstreamError means the inference provider reported an error or returned an
// unexpected response shape. It maps to HTTP 500 and carries the provider's
// message when one was available.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}
