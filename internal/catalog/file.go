package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

// Overlay is the document shape of an operator-supplied catalog file.
// Records use the same field names as the built-ins:
//
//	[[agents]]
//	name = "Acme Custom AI"
//	category = "content"
//	base_price = 99.0
//
//	[[bundles]]
//	name = "Acme Pack"
//	members = ["Acme Custom AI"]
type Overlay struct {
	Agents  []models.AgentSpec  `toml:"agents"`
	Bundles []models.BundleSpec `toml:"bundles"`
}

// LoadFile decodes a TOML overlay. Validation happens later, in the
// normalizer, so a decoded overlay is raw data like any other group.
func LoadFile(path string) (*Overlay, error) {
	var o Overlay
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return &o, nil
}
