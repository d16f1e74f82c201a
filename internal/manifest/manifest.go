// Package manifest reads the YAML manifest that describes an offline
// schedule import: the plan it targets and the extracted schedule text.
package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"alcyxob/run-trainer/internal/domain"
)

//go:embed manifest.schema.yaml
var schemaYAML []byte

// Manifest describes one schedule import.
type Manifest struct {
	Plan         PlanSpec `yaml:"plan"`
	ScheduleFile string   `yaml:"schedule_file"`
	Unit         string   `yaml:"unit,omitempty"`
}

type PlanSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
}

// Validator checks manifest documents against the embedded schema.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	schema, err := compileSchema(schemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Parse validates raw YAML and decodes it.
func (v *Validator) Parse(data []byte) (*Manifest, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	jsonDoc, err := toJSONValue(doc)
	if err != nil {
		return nil, err
	}
	if err := v.schema.Validate(jsonDoc); err != nil {
		return nil, fmt.Errorf("manifest does not match schema: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if _, _, err := m.Dates(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest file. A relative schedule_file is resolved against
// the manifest's directory.
func (v *Validator) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := v.Parse(data)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(m.ScheduleFile) {
		m.ScheduleFile = filepath.Join(filepath.Dir(path), m.ScheduleFile)
	}
	return m, nil
}

// Dates returns the plan window. The end must fall after the start.
func (m *Manifest) Dates() (start, end time.Time, err error) {
	start, err = parseManifestDate(m.Plan.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("plan.start_date: %w", err)
	}
	end, err = parseManifestDate(m.Plan.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("plan.end_date: %w", err)
	}
	if !end.After(start) {
		return start, end, fmt.Errorf("plan.end_date must be after plan.start_date")
	}
	return start, end, nil
}

// DistanceUnit is the declared unit, miles when omitted.
func (m *Manifest) DistanceUnit() domain.DistanceUnit {
	if m.Unit == "" {
		return domain.UnitMiles
	}
	u, err := domain.ParseDistanceUnit(m.Unit)
	if err != nil {
		return domain.UnitMiles
	}
	return u
}

// TrainingPlan builds the training plan the manifest describes.
func (m *Manifest) TrainingPlan() (*domain.TrainingPlan, error) {
	start, end, err := m.Dates()
	if err != nil {
		return nil, err
	}
	return &domain.TrainingPlan{
		Name:        m.Plan.Name,
		Description: m.Plan.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.PlanStatusDraft,
	}, nil
}

// parseManifestDate accepts YYYY-MM-DD, optionally followed by a time part.
func parseManifestDate(s string) (time.Time, error) {
	if len(s) < len(domain.DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return domain.ParseDate(s[:len(domain.DateLayout)])
}

func compileSchema(data []byte) (*jsonschema.Schema, error) {
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonschema.CompileString("manifest.schema.json", string(jsonData))
}

// toJSONValue converts a YAML-decoded value into the shapes encoding/json
// produces, which is what the schema validator expects.
func toJSONValue(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert manifest: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to convert manifest: %w", err)
	}
	return out, nil
}
