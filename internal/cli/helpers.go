package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &models.ValidationError{Field: field, Reason: "expected YYYY-MM-DD, got " + strconv.Quote(value)}
	}
	return t, nil
}

// ParseGender accepts male/female (or m/f) and reports whether it is male.
func ParseGender(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male", "m":
		return true, nil
	case "female", "f":
		return false, nil
	}
	return false, &models.ValidationError{Field: "gender", Reason: "must be male or female, got " + strconv.Quote(value)}
}

// GenderLabel renders the Male flag.
func GenderLabel(male bool) string {
	if male {
		return "male"
	}
	return "female"
}

// ParseIDs converts positional product ids.
func ParseIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, &UsageError{Msg: "at least one id is required"}
	}
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil || id <= 0 {
			return nil, &models.ValidationError{Field: "id", Reason: strconv.Quote(a) + " is not a positive integer"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
