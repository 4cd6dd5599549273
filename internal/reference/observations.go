package reference

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zain/bacteria-identifier/internal/types"
)

// LoadObservations loads an observation set from a JSON file holding a flat
// object of field name to observed value.
func LoadObservations(path string) (types.ObservationSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var observations types.ObservationSet
	if err := json.Unmarshal(content, &observations); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return observations, nil
}
