package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Garsondee/holdfast/pkg/logger"
)

// Load reads a JSON catalog from path. Tables present in the file replace the
// matching built-in table wholesale; absent tables keep their defaults. The
// merged result is validated before it is returned.
func Load(path string) (*Catalog, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(file)
	if err != nil {
		return nil, err
	}
	logger.Component("catalog").WithField("path", path).Infof(
		"Loaded %d structure, %d ally and %d hostile types",
		len(c.Structures), len(c.Allies), len(c.Hostiles))
	return c, nil
}

// Parse decodes a JSON catalog, merged over Default.
func Parse(data []byte) (*Catalog, error) {
	var file Catalog
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	c := Default()
	if file.Structures != nil {
		c.Structures = file.Structures
	}
	if file.Allies != nil {
		c.Allies = file.Allies
	}
	if file.Hostiles != nil {
		c.Hostiles = file.Hostiles
	}
	if file.Economy.Rates != nil {
		c.Economy.Rates = file.Economy.Rates
	}
	if file.Economy.Starting != nil {
		c.Economy.Starting = file.Economy.Starting
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}
