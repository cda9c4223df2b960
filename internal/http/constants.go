package httpx

const (
	// maxJSONBodyBytes bounds JSON request bodies.
	maxJSONBodyBytes = 1 << 20

	contentTypeJSON = "application/json"
)
