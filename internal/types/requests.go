package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// IdentifyRequest represents the request body for POST /identify.
type IdentifyRequest struct {
	Observations map[string]string `json:"observations" validate:"required"`
	// MaxResults optionally lowers the result cap below the default of 10.
	MaxResults int `json:"max_results,omitempty" validate:"omitempty,min=1,max=10"`
	// Persist stores the run in the history database when one is configured.
	Persist bool `json:"persist,omitempty"`
}

// Validate validates the IdentifyRequest using the validator.
func (r *IdentifyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IdentifyResponse represents the response for POST /identify.
type IdentifyResponse struct {
	RunID  string  `json:"run_id,omitempty"`
	Report *Report `json:"report"`
}

// Run represents a stored identification run for API responses
// (avoids an import cycle with the db package).
type Run struct {
	ID           uuid.UUID         `json:"id"`
	Observations map[string]string `json:"observations"`
	ResultCount  int               `json:"result_count"`
	TopGenus     string            `json:"top_genus,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
