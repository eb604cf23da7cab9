package llm_client

import "fmt"

// HTTPError carries the status and raw body of a non-200 response from
// the inference host.
type HTTPError struct {
	StatusCode int
	RawBody    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Ollama API error (HTTP %d): %s", e.StatusCode, e.RawBody)
}
