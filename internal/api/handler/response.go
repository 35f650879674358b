package handler

// envelope is the uniform response shape returned by every endpoint:
// {success, message?, data?, count?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func countOf(n int) *int {
	return &n
}
