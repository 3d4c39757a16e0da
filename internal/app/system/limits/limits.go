// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody caps every JSON request body. Larger bodies are cut off
	// and fail to decode.
	MaxJSONBody = 1 << 20 // 1 MB
)
