package validate

import (
	"fmt"

	"github.com/go-openapi/strfmt"
)

var priorities = map[string]bool{"low": true, "medium": true, "high": true}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Priority checks the enumerated priority values.
func Priority(v string) error {
	if err := NonEmpty("priority", v); err != nil {
		return err
	}
	if !priorities[v] {
		return fmt.Errorf("priority must be one of low, medium, high")
	}
	return nil
}

// TargetDate parses the optional targetDate field. An empty string means
// no target date; anything else must be a YYYY-MM-DD calendar date.
func TargetDate(v string) (*strfmt.Date, error) {
	if v == "" {
		return nil, nil
	}
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(v)); err != nil {
		return nil, fmt.Errorf("targetDate must be a YYYY-MM-DD date")
	}
	return &d, nil
}

// CreateItem validates input for creating a new bucket-list item and
// returns the parsed target date.
func CreateItem(title, category, priority, targetDate string) (*strfmt.Date, error) {
	if err := NonEmpty("title", title); err != nil {
		return nil, err
	}
	if err := NonEmpty("category", category); err != nil {
		return nil, err
	}
	if err := Priority(priority); err != nil {
		return nil, err
	}
	return TargetDate(targetDate)
}
