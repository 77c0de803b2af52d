package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const productColumns = `id::text, name, brand, price, category, size, gender, stock, rating, notes, image_url`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

// List возвращает товары в порядке загрузки.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Get возвращает товар по ID. Строка, не являющаяся UUID, означает отсутствующий товар.
func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, domain.ErrProductNotFound
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

// InsertMany загружает товары одной транзакцией.
func (r *productRepository) InsertMany(ctx context.Context, products []domain.Product) (ids []string, err error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids = make([]string, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, brand, price, category, size, gender, stock, rating, notes, image_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, p.ID, p.Name, p.Brand, p.Price, p.Category, p.Size, p.Gender, p.Stock,
			nullInt(p.Rating), nullString(p.Notes), nullString(p.ImageURL),
		); err != nil {
			return nil, fmt.Errorf("insert product %q: %w", p.Name, err)
		}
		ids = append(ids, p.ID)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit products: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p        domain.Product
		rating   sql.NullInt64
		notes    sql.NullString
		imageURL sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Category, &p.Size, &p.Gender, &p.Stock,
		&rating, &notes, &imageURL); err != nil {
		return domain.Product{}, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		p.Rating = &v
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	result := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

var _ domain.ProductRepository = (*productRepository)(nil)
