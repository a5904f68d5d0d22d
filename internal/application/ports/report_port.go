package ports

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// StockReportGenerator genera la planilla de stock (PDF) de una empresa.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, company *entity.Company, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}
