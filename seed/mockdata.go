package seed

import (
	"encoding/json"
	"io/fs"

	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/models"
)

type MockData struct {
	DataAssets []MockDataAsset `json:"dataAssets"`
	Domains    []models.Domain `json:"domains"`
}

// LoadMockData reads and parses name from fsys. Any failure is logged and
// reported as nil so the caller can skip the dependent steps.
func LoadMockData(fsys fs.FS, name string, logger *zap.Logger) *MockData {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		logger.Warn("could not read mock data, skipping", zap.String("file", name), zap.Error(err))
		return nil
	}
	var data MockData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("could not parse mock data, skipping", zap.String("file", name), zap.Error(err))
		return nil
	}
	return &data
}
