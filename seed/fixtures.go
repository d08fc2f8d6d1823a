package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/rriehl64/collibra-app-sub009/models"
)

// Fixtures holds the bundled sample data.
//
//go:embed fixtures
var Fixtures embed.FS

const (
	MockDataFile             = "fixtures/mock-data.json"
	PortfoliosFile           = "fixtures/portfolios.yaml"
	ProgramDocumentationFile = "fixtures/program-documentation.yaml"
	SampleDataFile           = "fixtures/sample-data.yaml"
)

// SampleData is the payload of the import/destroy seeder.
type SampleData struct {
	Users      []models.User   `json:"users"`
	Policies   []models.Policy `json:"policies"`
	DataAssets []MockDataAsset `json:"dataAssets"`
	Domains    []models.Domain `json:"domains"`
}

// decodeYAML reads a YAML fixture and decodes it through JSON so the models'
// json tags (and time.Time parsing) apply.
func decodeYAML(fsys fs.FS, name string, v interface{}) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("convert fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(asJSON, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

func LoadPortfolios(fsys fs.FS) ([]models.Portfolio, error) {
	var out []models.Portfolio
	if err := decodeYAML(fsys, PortfoliosFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func LoadProgramDocumentation(fsys fs.FS) ([]models.ProgramDocumentation, error) {
	var out []models.ProgramDocumentation
	if err := decodeYAML(fsys, ProgramDocumentationFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func LoadSampleData(fsys fs.FS) (*SampleData, error) {
	var out SampleData
	if err := decodeYAML(fsys, SampleDataFile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
