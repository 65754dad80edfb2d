package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

//go:embed destinations.json
var destinationsJSON []byte

// Destinations returns the default catalogue. IDs are left zero; repositories assign them.
func Destinations() ([]domain.Destination, error) {
	var out []domain.Destination
	if err := json.Unmarshal(destinationsJSON, &out); err != nil {
		return nil, fmt.Errorf("seed: decode destinations: %w", err)
	}
	return out, nil
}
