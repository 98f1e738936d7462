package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/forgeads/forgeads"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ forgeads.ProductService = (*ProductService)(nil)

const productColumns = `id, product_name, target_audience, main_pain, main_benefit, central_promise,
	communication_tone, niche, headline, body, cta, briefing, source_type, source_url, content_hash, created_at`

// ProductService implements forgeads.ProductService using SQLite.
type ProductService struct {
	db *DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db}
}

// CreateProduct saves a completed analysis, assigning its ID, creation
// time and content hash.
func (s *ProductService) CreateProduct(ctx context.Context, p *forgeads.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	p.ContentHash = hashContent(p.Headline, p.Body, p.CTA, p.Briefing)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ProductName, p.TargetAudience, p.MainPain, p.MainBenefit, p.CentralPromise,
		p.CommunicationTone, p.Niche, p.Headline, p.Body, p.CTA, p.Briefing,
		string(p.SourceType), p.SourceURL, p.ContentHash, p.CreatedAt.Format(time.RFC3339))

	return err
}

// FindProductByID retrieves a product by ID.
func (s *ProductService) FindProductByID(ctx context.Context, id string) (*forgeads.Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, forgeads.Errorf(forgeads.ENOTFOUND, "Análise não encontrada.")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindProducts retrieves products matching the filter, newest first.
func (s *ProductService) FindProducts(ctx context.Context, filter forgeads.ProductFilter) ([]*forgeads.Product, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + productColumns + " FROM products WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*forgeads.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// DeleteProduct permanently removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return forgeads.Errorf(forgeads.ENOTFOUND, "Análise não encontrada.")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*forgeads.Product, error) {
	var p forgeads.Product
	var createdAt string

	if err := row.Scan(&p.ID, &p.ProductName, &p.TargetAudience, &p.MainPain, &p.MainBenefit,
		&p.CentralPromise, &p.CommunicationTone, &p.Niche, &p.Headline, &p.Body, &p.CTA,
		&p.Briefing, &p.SourceType, &p.SourceURL, &p.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
