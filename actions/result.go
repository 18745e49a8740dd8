package actions

import "net/http"

// Outward-facing failure messages. Not-found and access-denied share one
// message so callers cannot probe for record existence; storage errors are
// logged in full but surfaced generically.
const (
	MsgNotFound = "not found or access denied"
	MsgInternal = "something went wrong"
)

// Result is the uniform envelope every action returns. Exactly one of the
// success or failure shapes is populated.
type Result struct {
	Success     bool                `json:"success"`
	Data        interface{}         `json:"data,omitempty"`
	Message     string              `json:"message,omitempty"`
	Error       string              `json:"error,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`

	status int
}

// Status is the HTTP status the envelope maps to.
func (r Result) Status() int { return r.status }

func ok(data interface{}, message string) Result {
	return Result{Success: true, Data: data, Message: message, status: http.StatusOK}
}

func created(data interface{}, message string) Result {
	return Result{Success: true, Data: data, Message: message, status: http.StatusCreated}
}

func invalid(fieldErrors map[string][]string) Result {
	return Result{
		Success:     false,
		Error:       "validation failed",
		FieldErrors: fieldErrors,
		status:      http.StatusBadRequest,
	}
}

func notFound() Result {
	return Result{Success: false, Error: MsgNotFound, status: http.StatusNotFound}
}

func internal() Result {
	return Result{Success: false, Error: MsgInternal, status: http.StatusInternalServerError}
}
