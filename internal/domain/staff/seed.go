package staff

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed seeddata/users.json
var defaultSeed []byte

type seedDocument struct {
	Users []Employee `json:"users"`
}

// LoadSeed reads the seed dataset from path, or the embedded default dataset when path is empty.
func LoadSeed(path string) ([]Employee, error) {
	if path == "" {
		return ParseSeed(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

func ParseSeed(r io.Reader) ([]Employee, error) {
	var doc seedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return doc.Users, nil
}
