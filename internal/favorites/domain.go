// internal/favorites/domain.go
package favorites

import (
	"time"

	"github.com/google/uuid"
)

// Item is a saved (user, book) pair. The same pair may be saved more than once.
type Item struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	BookID    uuid.UUID `json:"bookId"`
	CreatedAt time.Time `json:"createdAt"`
}
