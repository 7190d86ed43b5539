// Package iotaxa builds the taxa lookup table. It reads the curated
// lookup CSV, parses every scientific name with gnparser, and stages
// the result for upload. Parsing results are cached between runs.
package iotaxa

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnuuid"
	"github.com/pristineseas/psdb/internal/ioingest"
	"github.com/pristineseas/psdb/internal/iostage"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/lifecycle"
	"github.com/pristineseas/psdb/pkg/parserpool"
	"golang.org/x/sync/errgroup"
)

// Staged taxa live outside any single expedition.
const (
	StageExpeditionID = "global"
	StageMethod       = "taxa"
)

// acceptedStatus wins duplicate-code tie-breaks.
const acceptedStatus = "accepted"

type builder struct{}

// New creates the taxa lookup builder.
func New() lifecycle.TaxaBuilder {
	return &builder{}
}

// Build reads the taxa lookup CSV from the data directory, parses all
// scientific names and stages the harmonized taxa table. Duplicate
// taxon codes resolve to their accepted row; ambiguous duplicates
// fail the build.
func (b *builder) Build(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()

	path, err := resolveLookupFile(cfg.Ingest.DataDir)
	if err != nil {
		return LookupError(err)
	}
	gn.Info("(1/3) Reading taxa lookup <em>%s</em>", path)

	raw, err := ioingest.ReadCSVFile(path, "taxa")
	if err != nil {
		return LookupError(err)
	}
	if !raw.HasColumn("taxon_code") ||
		!raw.HasColumn("scientific_name") {
		return LookupError(missingColumnsError(path))
	}

	rows, err := dedupByCode(raw)
	if err != nil {
		return err
	}

	gn.Info("(2/3) Parsing %s scientific names...",
		humanize.Comma(int64(len(rows))))
	parsedRows, err := b.parseNames(ctx, cfg, rows)
	if err != nil {
		return err
	}

	gn.Info("(3/3) Staging taxa table...")
	tab := buildTable(parsedRows)

	st, err := iostage.New(config.StageFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveTable(
		StageExpeditionID, StageMethod, tab,
	); err != nil {
		return err
	}

	dur := time.Since(startTime)
	slog.Info("Taxa lookup built",
		"names", tab.Len(),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Message("<em>Staged %s taxa in %s</em>",
		humanize.Comma(int64(tab.Len())),
		gnfmt.TimeString(dur.Seconds()))

	return nil
}

// lookupRow is one row of the curated lookup file before parsing.
type lookupRow struct {
	code           string
	scientificName string
	nomenclature   string
	rank           string
	trophicGroup   string
	lwA            string
	lwB            string
	lengthToTL     string
	maxLengthCM    string
	status         string
}

// parsedRow is a lookup row with its parsing results attached.
type parsedRow struct {
	lookupRow
	nameID        string
	canonicalName string
	parseQuality  int
}

// parseNames runs the parser pool over all lookup rows with
// JobsNumber workers, consulting the cache first.
func (b *builder) parseNames(
	ctx context.Context,
	cfg *config.Config,
	rows []lookupRow,
) ([]parsedRow, error) {
	cache, err := loadCache(cfg.HomeDir)
	if err != nil {
		slog.Warn("Cannot load taxa parse cache, starting fresh",
			"error", err)
		cache = &parseCache{Entries: make(map[string]cacheEntry)}
	}

	pool := parserpool.New(cfg.JobsNumber)
	defer pool.Close()

	chIn := make(chan lookupRow)
	chOut := make(chan parsedRow)

	parent := ctx
	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	jobs := cfg.JobsNumber
	if jobs == 0 {
		jobs = 1
	}
	for range jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return parseWorker(ctx, pool, cache, chIn, chOut)
		})
	}

	var res []parsedRow
	g.Go(func() error {
		for row := range chOut {
			res = append(res, row)
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	bar := pb.Full.Start(len(rows))
	bar.Set("prefix", "Parsing names: ")
	bar.Set(pb.CleanOnFinish, true)

feed:
	for _, row := range rows {
		select {
		case <-ctx.Done():
			// A worker failed or the run was cancelled; stop feeding
			// and let g.Wait report the cause.
			break feed
		case chIn <- row:
			bar.Add(1)
		}
	}
	close(chIn)
	bar.Finish()

	if err := g.Wait(); err != nil {
		return nil, ParseError(err)
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	if err := saveCache(cfg.HomeDir, cache); err != nil {
		slog.Warn("Cannot save taxa parse cache", "error", err)
	}

	// Workers deliver out of order.
	sort.Slice(res, func(i, j int) bool {
		return res[i].code < res[j].code
	})

	return res, nil
}

// parseWorker parses names from chIn, consulting the shared cache.
func parseWorker(
	ctx context.Context,
	pool parserpool.Pool,
	cache *parseCache,
	chIn <-chan lookupRow,
	chOut chan<- parsedRow,
) error {
	for row := range chIn {
		out := parsedRow{lookupRow: row}

		if hit, ok := cache.get(row.scientificName); ok {
			out.nameID = hit.NameID
			out.canonicalName = hit.CanonicalName
			out.parseQuality = hit.ParseQuality
		} else {
			code := nomcode.Zoological
			if strings.EqualFold(row.nomenclature, "botanical") {
				code = nomcode.Botanical
			}
			parsed, err := pool.Parse(row.scientificName, code)
			if err != nil {
				return err
			}

			out.nameID = gnuuid.New(row.scientificName).String()
			out.parseQuality = parsed.ParseQuality
			if parsed.Parsed {
				out.canonicalName = parsed.Canonical.Simple
			}
			cache.put(row.scientificName, cacheEntry{
				NameID:        out.nameID,
				CanonicalName: out.canonicalName,
				ParseQuality:  out.parseQuality,
			})
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- out:
		}
	}
	return nil
}
