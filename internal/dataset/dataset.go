package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

//go:embed fixtures/default.jsonc
var defaultFixture []byte

// Container is one shipping container tracked by the yard.
type Container struct {
	Number    string     `json:"number"`
	Line      string     `json:"line"`
	Vessel    string     `json:"vessel"`
	Status    string     `json:"status"`
	WeightKg  *float64   `json:"weight_kg"`
	Arrived   *time.Time `json:"arrived"`
	Departed  *time.Time `json:"departed"`
	Hazardous bool       `json:"hazardous"`
}

// Bill is an invoice issued to a customer. Due is an ISO-8601 date.
type Bill struct {
	Number   string  `json:"number"`
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Due      *string `json:"due"`
	Paid     bool    `json:"paid"`
}

// User is an operator account.
type User struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login"`
}

// Dataset is everything the dashboard displays.
type Dataset struct {
	Containers []Container `json:"containers"`
	Bills      []Bill      `json:"bills"`
	Users      []User      `json:"users"`
}

// Clone returns a copy whose slices are independent of d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	return &Dataset{
		Containers: cloneSlice(d.Containers),
		Bills:      cloneSlice(d.Bills),
		Users:      cloneSlice(d.Users),
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

// Parse decodes a JWCC document (JSON with comments and trailing commas).
func Parse(data []byte) (*Dataset, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// Default returns the embedded sample dataset.
func Default() *Dataset {
	ds, err := Parse(defaultFixture)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded fixture is invalid: %v", err))
	}
	return ds
}

// Load reads the dataset at path. An empty path yields the embedded sample.
func Load(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// Source locates the dataset file. The zero Source serves the embedded sample.
type Source struct {
	Path string
}

// Embedded reports whether the source serves the built-in sample.
func (s Source) Embedded() bool {
	return strings.TrimSpace(s.Path) == ""
}

// Load reads the dataset.
func (s Source) Load() (*Dataset, error) {
	return Load(s.Path)
}

// ModTime returns the modification time of the backing file. The embedded
// sample never changes and reports the zero time.
func (s Source) ModTime() (time.Time, error) {
	if s.Embedded() {
		return time.Time{}, nil
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat dataset: %w", err)
	}
	return info.ModTime(), nil
}

// Label names the source for display.
func (s Source) Label() string {
	if s.Embedded() {
		return "sample"
	}
	return s.Path
}
