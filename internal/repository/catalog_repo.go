package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/model"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Load reads every catalog table concurrently and assembles the document the
// catalog package validates.
func (r *CatalogRepository) Load(ctx context.Context) (catalog.Data, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		data            catalog.Data
		defaultPkgs     []model.PricePackage
		regionalPkgs    map[string][]model.PricePackage
		defaultMethods  []model.PaymentMethod
		regionalMethods map[string][]model.PaymentMethod
	)

	g.Go(func() error {
		var err error
		data.Regions, data.DefaultRegion, err = r.regions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		defaultPkgs, regionalPkgs, err = r.packages(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.SpecialOffers, err = r.specialOffers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		defaultMethods, regionalMethods, err = r.paymentMethods(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Courses, err = r.courses(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return catalog.Data{}, err
	}

	data.DefaultPackages = defaultPkgs
	data.RegionalPackages = regionalPkgs
	data.DefaultPaymentMethods = defaultMethods
	data.RegionalPaymentMethods = regionalMethods
	return data, nil
}

func (r *CatalogRepository) regions(ctx context.Context) ([]model.Region, string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, currency, is_default FROM regions ORDER BY position, id`)
	if err != nil {
		return nil, "", fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var (
		regions   []model.Region
		defaultID string
	)
	for rows.Next() {
		var reg model.Region
		var isDefault bool
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Currency, &isDefault); err != nil {
			return nil, "", fmt.Errorf("scan region: %w", err)
		}
		if isDefault {
			defaultID = reg.ID
		}
		regions = append(regions, reg)
	}
	return regions, defaultID, rows.Err()
}

func (r *CatalogRepository) packages(ctx context.Context) ([]model.PricePackage, map[string][]model.PricePackage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(region_id, ''), package_id, name, base_units, bonus_units, price, currency
		FROM price_packages
		ORDER BY region_id NULLS FIRST, position, package_id`)
	if err != nil {
		return nil, nil, fmt.Errorf("query price packages: %w", err)
	}
	defer rows.Close()

	var defaults []model.PricePackage
	regional := make(map[string][]model.PricePackage)
	for rows.Next() {
		var regionID string
		var p model.PricePackage
		if err := rows.Scan(&regionID, &p.ID, &p.Name, &p.BaseUnits, &p.BonusUnits, &p.Price, &p.Currency); err != nil {
			return nil, nil, fmt.Errorf("scan price package: %w", err)
		}
		if regionID == "" {
			defaults = append(defaults, p)
		} else {
			regional[regionID] = append(regional[regionID], p)
		}
	}
	return defaults, regional, rows.Err()
}

func (r *CatalogRepository) specialOffers(ctx context.Context) ([]model.SpecialOffer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, discount_pct, condition FROM special_offers ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query special offers: %w", err)
	}

	offers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SpecialOffer, error) {
		var o model.SpecialOffer
		err := row.Scan(&o.ID, &o.Title, &o.Description, &o.DiscountPct, &o.Condition)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan special offers: %w", err)
	}
	return offers, nil
}

func (r *CatalogRepository) paymentMethods(ctx context.Context) ([]model.PaymentMethod, map[string][]model.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(region_id, ''), method_id, name, type
		FROM payment_methods
		ORDER BY region_id NULLS FIRST, position, method_id`)
	if err != nil {
		return nil, nil, fmt.Errorf("query payment methods: %w", err)
	}
	defer rows.Close()

	var defaults []model.PaymentMethod
	regional := make(map[string][]model.PaymentMethod)
	for rows.Next() {
		var regionID string
		var m model.PaymentMethod
		if err := rows.Scan(&regionID, &m.ID, &m.Name, &m.Type); err != nil {
			return nil, nil, fmt.Errorf("scan payment method: %w", err)
		}
		if regionID == "" {
			defaults = append(defaults, m)
		} else {
			regional[regionID] = append(regional[regionID], m)
		}
	}
	return defaults, regional, rows.Err()
}

func (r *CatalogRepository) courses(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, slug, category, level, duration_hours, price_credits,
			rating::float8, students, lessons, instructor, thumbnail_url
		FROM courses ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}

	courses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Course, error) {
		var c model.Course
		err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.Category, &c.Level, &c.Hours,
			&c.Credits, &c.Rating, &c.Students, &c.Lessons, &c.Instructor, &c.Thumbnail)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}
	return courses, nil
}
