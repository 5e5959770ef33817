package completion

// ResultKind enumerates the closed set of completion outcomes. None of them
// propagates as a fault; callers branch on the kind.
type ResultKind string

const (
	// ResultText carries the model's reply body
	ResultText ResultKind = "text"
	// ResultUnavailable means no completion credential is configured
	ResultUnavailable ResultKind = "unavailable"
	// ResultNetworkFailure means the exchange failed in transit or decode
	ResultNetworkFailure ResultKind = "network_failure"
	// ResultEmptyResponse means the service answered with nothing usable
	ResultEmptyResponse ResultKind = "empty_response"
)

// Result is the outcome of a single completion exchange
type Result struct {
	Kind ResultKind
	Body string
}

// Degraded-service wordings. They live here, next to the variant set, so
// every reply path shares the exact same text.
const (
	textUnavailable    = "I don't have my completion service credential yet. Please ask an admin to configure it."
	textNetworkFailure = "Network error reaching my planning service."
	textEmptyResponse  = "I'm ready, but I didn't get a response."
)

// Render converts the result into the user-visible reply body. ResultText
// yields the model's reply verbatim; every degraded variant yields its fixed
// wording.
func (r *Result) Render() string {
	switch r.Kind {
	case ResultText:
		return r.Body
	case ResultUnavailable:
		return textUnavailable
	case ResultNetworkFailure:
		return textNetworkFailure
	case ResultEmptyResponse:
		return textEmptyResponse
	default:
		return textEmptyResponse
	}
}
