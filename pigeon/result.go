package pigeon

// Result is a decoded JSON response body. It is nil when the body was empty
// or was not a JSON object.
type Result map[string]any

// Message returns the "message" field, or "" when absent.
func (r Result) Message() string {
	s, _ := r["message"].(string)
	return s
}

// Data returns the "data" object, as sent back by the OTP endpoints.
func (r Result) Data() map[string]any {
	d, _ := r["data"].(map[string]any)
	return d
}
