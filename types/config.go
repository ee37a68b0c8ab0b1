package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ViewMode string

const (
	ViewSingle ViewMode = "single"
	ViewTabbed ViewMode = "tabbed"
)

type Config struct {
	API struct {
		BaseURL string   `json:"baseUrl"`
		Timeout Duration `json:"timeout"`
	} `json:"api"`
	Storage struct {
		Driver    string `json:"driver"`
		Path      string `json:"path"`
		SQLDriver string `json:"sqlDriver"`
		DSN       string `json:"dsn"`
	} `json:"storage"`
	DefaultAccount string   `json:"defaultAccount"`
	ViewMode       ViewMode `json:"viewMode"`
}

// Duration accepts "10s"-style strings or a number of seconds in JSON.
// null leaves the value unchanged.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		v, err := time.ParseDuration(unquoted)
		if err != nil {
			return fmt.Errorf("invalid duration %s, want a string like \"10s\" or a number of seconds: %w", s, err)
		}
		d.Duration = v
		return nil
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %s, want a string like \"10s\" or a number of seconds", s)
	}
	d.Duration = time.Duration(seconds * float64(time.Second))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
