package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/models"
)

// SeedPortfolios replaces the portfolios collection with the given records.
func SeedPortfolios(ctx context.Context, logger *zap.Logger, coll Collection, portfolios []models.Portfolio) (int64, error) {
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(portfolios))
	for i := range portfolios {
		p := portfolios[i]
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("portfolio %d: %w", i, err)
		}
		p.Touch(now)
		docs = append(docs, &p)
	}
	return Reseed(ctx, logger, coll, docs)
}

// SeedProgramDocumentation replaces the program documentation collection.
func SeedProgramDocumentation(ctx context.Context, logger *zap.Logger, coll Collection, docs []models.ProgramDocumentation) (int64, error) {
	now := time.Now().UTC()
	out := make([]interface{}, 0, len(docs))
	for i := range docs {
		d := docs[i]
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("program documentation %d: %w", i, err)
		}
		d.Touch(now)
		out = append(out, &d)
	}
	return Reseed(ctx, logger, coll, out)
}
