package types

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope carries the status discriminator shared by every JSON body.
// Success payloads embed it next to their own top-level fields.
type Envelope struct {
	Status string `json:"status"`
}

// Success returns an envelope marked as successful.
func Success() Envelope {
	return Envelope{Status: StatusSuccess}
}

// ErrorEnvelope is the body written for every failed request.
type ErrorEnvelope struct {
	Envelope
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Details any      `json:"details,omitempty"`
}
