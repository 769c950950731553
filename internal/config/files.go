package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// genresFile is the shape of GENRES_FILE. JSON files parse as YAML.
type genresFile struct {
	ValidGenres []string `yaml:"validGenres"`
}

// tokensFile is the shape of TOKENS_FILE.
type tokensFile struct {
	ValidTokens []string `yaml:"validTokens"`
}

// LoadGenres reads the accepted genres from path.
func LoadGenres(path string) ([]string, error) {
	var f genresFile
	if err := readYAML(path, &f); err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	if len(f.ValidGenres) == 0 {
		return nil, fmt.Errorf("load genres: %s has no validGenres", path)
	}
	return f.ValidGenres, nil
}

// LoadTokens reads bootstrap session tokens from path.
func LoadTokens(path string) ([]string, error) {
	var f tokensFile
	if err := readYAML(path, &f); err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	for i, token := range f.ValidTokens {
		if token == "" {
			return nil, fmt.Errorf("load tokens: %s: token %d is empty", path, i)
		}
	}
	return f.ValidTokens, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
