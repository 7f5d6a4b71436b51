package lsh

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// Session is ambient diagnostic context for log correlation; it plays no
// role in job-control semantics.
type Session struct {
	StartTime time.Time
	UserID    int
	UserName  string
	MachineID string
	SessionID string
}

// NewSession captures the environment at shell startup.
func NewSession() *Session {
	hostname, _ := os.Hostname()
	return &Session{
		StartTime: time.Now(),
		UserID:    os.Getuid(),
		UserName:  os.Getenv("USER"),
		MachineID: hostname,
		SessionID: uuid.New().String(),
	}
}
