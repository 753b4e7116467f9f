package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringSlice stores a list as one comma joined column.
// No element may include a comma.
type StringSlice []string

// Value implements the driver.Valuer interface.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("unsafe string, %q", v)
		}
	}

	return strings.Join(s, ","), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan StringSlice, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*s = StringSlice{}
	} else {
		*s = strings.Split(str, ",")
	}

	return nil
}

// MarshalJSON never emits null so clients always get a list
func (s StringSlice) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]string(s))
}
