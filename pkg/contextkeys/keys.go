package contextkeys

type contextKey string

const (
	AdminIDKey   contextKey = "AdminID"
	RequestIDKey contextKey = "RequestID"
)
