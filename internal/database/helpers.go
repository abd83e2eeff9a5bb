package database

import (
	"fmt"
	"regexp"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// dateLayouts are the textual date forms drivers hand back for DATE columns.
var dateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// scanDate converts a DATE column value into a time.Time.
// NULL becomes the zero time.
func scanDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return d, nil
	case []byte:
		return parseDate(string(d))
	case string:
		return parseDate(d)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %T", v)
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// databaseNamePattern restricts database names, which are spliced into
// scripts and cannot be bound as parameters.
var databaseNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func validateDatabaseName(field, name string) error {
	if !databaseNamePattern.MatchString(name) {
		return &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a plain identifier", name)}
	}
	return nil
}
