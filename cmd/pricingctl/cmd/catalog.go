package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/config"
	"github.com/anyulbade/aiclases-pricing/internal/database"
	"github.com/anyulbade/aiclases-pricing/internal/offers"
	"github.com/anyulbade/aiclases-pricing/internal/repository"
	"github.com/anyulbade/aiclases-pricing/internal/service"
)

var (
	quoteCountry        string
	quoteAcceptLanguage string
	quoteUserAgent      string
	outputFormat        string
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List supported regions and whether they have their own catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputFormat == "json" {
			return writeJSON(out, cat.Regions())
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tCURRENCY\tCATALOG")
		defaultID := cat.Resolver().Default().ID
		for _, r := range cat.Regions() {
			kind := "default"
			if cat.Selector().HasCatalog(r.ID) {
				kind = "regional"
			}
			name := r.Name
			if r.ID == defaultID {
				name += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, name, r.Currency, kind)
		}
		return w.Flush()
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show the annotated packages a request would be offered",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		engine, err := offers.NewEngine(cat.SpecialOffers())
		if err != nil {
			return err
		}

		q := service.NewPricingService(cat, engine, nil).Quote(service.Signals{
			Country:        quoteCountry,
			AcceptLanguage: quoteAcceptLanguage,
			UserAgent:      quoteUserAgent,
		})

		out := cmd.OutOrStdout()
		if outputFormat == "json" {
			return writeJSON(out, q)
		}

		fmt.Fprintf(out, "Region: %s (%s) via %s, locale %s\n\n", q.Region.Name, q.Region.ID, q.Source, q.Locale)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PACKAGE\tCREDITS\tBONUS\tTOTAL\tPRICE\tPER CREDIT\tTAGS")
		for _, o := range q.Packages {
			tags := ""
			if o.IsPopular {
				tags += "popular "
			}
			if o.IsRecommended {
				tags += "recommended"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
				o.ID, o.BaseUnits, o.BonusUnits, o.TotalUnits, o.FormattedPrice, o.UnitPrice.StringFixed(4), tags)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, so := range q.SpecialOffers {
			fmt.Fprintf(out, "\nOffer: %s (-%s%%)", so.Title, so.DiscountPct.String())
		}
		if len(q.SpecialOffers) > 0 {
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{regionsCmd, quoteCmd} {
		c.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, json)")
	}
	quoteCmd.Flags().StringVarP(&quoteCountry, "country", "c", "", "explicit region code")
	quoteCmd.Flags().StringVar(&quoteAcceptLanguage, "accept-language", "", "Accept-Language header value")
	quoteCmd.Flags().StringVar(&quoteUserAgent, "user-agent", "", "User-Agent header value")
}

// openCatalog loads the catalog from the configured source.
func openCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := catalog.DefaultData()
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		pool, perr := database.NewPool(ctx, cfg.DatabaseURL())
		if perr != nil {
			return nil, perr
		}
		defer pool.Close()
		data, err = repository.NewCatalogRepository(pool).Load(ctx)
	}
	if err != nil {
		return nil, err
	}
	if cfg.DefaultRegion != "" {
		data.DefaultRegion = cfg.DefaultRegion
	}
	return catalog.New(data)
}

func writeJSON(w io.Writer, v any) error {
	decimal.MarshalJSONWithoutQuotes = true
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
