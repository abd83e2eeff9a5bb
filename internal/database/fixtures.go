package database

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

//go:embed fixtures/*
var fixtureFS embed.FS

const (
	relationalScript = "fixtures/create_sample_data.sql"
	graphScript      = "fixtures/create_sample_data.cypher"
	documentFixture  = "fixtures/mongo_sample_data.json"
	keyValueFixture  = "fixtures/redis_sample_data.json"
)

// databasePlaceholder is replaced by the configured database name in scripts.
const databasePlaceholder = "{{database}}"

// loadScript reads an embedded script and binds the database name.
func loadScript(name, database string) (string, error) {
	data, err := fixtureFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	return strings.ReplaceAll(string(data), databasePlaceholder, database), nil
}

// dateFields lists, per collection, the fields stored as dates.
var dateFields = map[string][]string{
	membersCollection: {"birth"},
}

// parseDocumentFixture decodes {collection: {key: document}} into documents
// per collection, ordered by key, with date fields converted to time.Time.
func parseDocumentFixture(data []byte) (map[string][]any, error) {
	var raw map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document fixture: %w", err)
	}

	out := make(map[string][]any, len(raw))
	for collection, docs := range raw {
		keys := make([]string, 0, len(docs))
		for k := range docs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			doc := docs[k]
			for _, field := range dateFields[collection] {
				s, ok := doc[field].(string)
				if !ok {
					continue
				}
				t, err := time.Parse(models.DateLayout, s)
				if err != nil {
					return nil, fmt.Errorf("failed to parse %s.%s of %s: %w", collection, field, k, err)
				}
				doc[field] = t
			}
			out[collection] = append(out[collection], doc)
		}
	}
	return out, nil
}

// parseKeyValueFixture decodes a flat JSON object into string values.
func parseKeyValueFixture(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse key-value fixture: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}
