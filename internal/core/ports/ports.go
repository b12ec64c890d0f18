package ports

import (
	"context"
	"io"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

// Clock defines the port for reading the current time
type Clock interface {
	Now() time.Time
}

// SessionStore defines the port for holding open sessions for their lifetime
type SessionStore interface {
	// Save stores or replaces a session
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by id
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete discards a session
	Delete(ctx context.Context, id string) error

	// List returns all open sessions, oldest first
	List(ctx context.Context) ([]*domain.Session, error)

	// ExpireBefore discards sessions created before cutoff and returns their ids
	ExpireBefore(cutoff time.Time) []string
}

// ReportRenderer defines the port for rendering a fleet as a standalone document
type ReportRenderer interface {
	Render(w io.Writer, fleet *domain.Fleet, summary domain.Summary) error
}

// Exporter defines the port for writing records in a serialisation format
type Exporter interface {
	// Export writes assets to w
	Export(w io.Writer, assets []domain.AssetRecord) error

	// Extension returns the file extension without a dot
	Extension() string
}

// SystemClock is the Clock backed by time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
