package core

// Logger is the application-wide structured logger contract.
// Extra args may carry an error, a context map or the acting
// Admin/Student/Teacher for crash-reporting enrichment.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
