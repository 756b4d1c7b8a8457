// Package primitives provides versioning utilities for AutomatonConfig.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion computes a deterministic version for an AutomatonConfig.
// Priority: user-provided config.Version, else SHA256(config JSON)[:8].
func ComputeVersion(config *AutomatonConfig) string {
	if config.Version != "" {
		return config.Version
	}

	data, err := json.Marshal(config)
	if err != nil {
		// Only string fields; json.Marshal cannot fail here.
		return "invalid"
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
