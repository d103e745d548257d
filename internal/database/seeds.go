package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/model"
)

// SeedCatalog writes data into empty catalog tables in one transaction.
// It does nothing when regions already exist.
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool, data catalog.Data) error {
	if err := catalog.Validate(data); err != nil {
		return err
	}

	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM regions").Scan(&count)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("catalog already seeded, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, r := range data.Regions {
		_, err := tx.Exec(ctx,
			"INSERT INTO regions (id, name, currency, is_default, position) VALUES ($1, $2, $3, $4, $5)",
			r.ID, r.Name, r.Currency, r.ID == data.DefaultRegion, i)
		if err != nil {
			return fmt.Errorf("insert region %s: %w", r.ID, err)
		}
	}
	log.Info().Int("count", len(data.Regions)).Msg("inserted regions")

	packages := 0
	if err := insertPackages(ctx, tx, nil, data.DefaultPackages); err != nil {
		return err
	}
	packages += len(data.DefaultPackages)
	for _, regionID := range sortedKeys(data.RegionalPackages) {
		pkgs := data.RegionalPackages[regionID]
		if err := insertPackages(ctx, tx, &regionID, pkgs); err != nil {
			return err
		}
		packages += len(pkgs)
	}
	log.Info().Int("count", packages).Msg("inserted price packages")

	for i, o := range data.SpecialOffers {
		_, err := tx.Exec(ctx,
			`INSERT INTO special_offers (id, title, description, discount_pct, condition, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, o.Title, o.Description, o.DiscountPct, o.Condition, i)
		if err != nil {
			return fmt.Errorf("insert special offer %s: %w", o.ID, err)
		}
	}
	log.Info().Int("count", len(data.SpecialOffers)).Msg("inserted special offers")

	methods := 0
	if err := insertPaymentMethods(ctx, tx, nil, data.DefaultPaymentMethods); err != nil {
		return err
	}
	methods += len(data.DefaultPaymentMethods)
	for _, regionID := range sortedKeys(data.RegionalPaymentMethods) {
		list := data.RegionalPaymentMethods[regionID]
		if err := insertPaymentMethods(ctx, tx, &regionID, list); err != nil {
			return err
		}
		methods += len(list)
	}
	log.Info().Int("count", methods).Msg("inserted payment methods")

	for i, c := range data.Courses {
		_, err := tx.Exec(ctx,
			`INSERT INTO courses (id, title, description, slug, category, level, duration_hours,
				price_credits, rating, students, lessons, instructor, thumbnail_url, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			c.ID, c.Title, c.Description, c.Slug, c.Category, c.Level, c.Hours,
			c.Credits, c.Rating, c.Students, c.Lessons, c.Instructor, c.Thumbnail, i)
		if err != nil {
			return fmt.Errorf("insert course %s: %w", c.ID, err)
		}
	}
	log.Info().Int("count", len(data.Courses)).Msg("inserted courses")

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Msg("catalog seed complete")
	return nil
}

func insertPackages(ctx context.Context, tx pgx.Tx, regionID *string, pkgs []model.PricePackage) error {
	for i, p := range pkgs {
		_, err := tx.Exec(ctx,
			`INSERT INTO price_packages (region_id, package_id, name, base_units, bonus_units, price, currency, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			regionID, p.ID, p.Name, p.BaseUnits, p.BonusUnits, p.Price, p.Currency, i)
		if err != nil {
			return fmt.Errorf("insert package %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertPaymentMethods(ctx context.Context, tx pgx.Tx, regionID *string, methods []model.PaymentMethod) error {
	for i, m := range methods {
		_, err := tx.Exec(ctx,
			"INSERT INTO payment_methods (region_id, method_id, name, type, position) VALUES ($1, $2, $3, $4, $5)",
			regionID, m.ID, m.Name, m.Type, i)
		if err != nil {
			return fmt.Errorf("insert payment method %s: %w", m.ID, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
