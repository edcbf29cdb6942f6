package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/region-sentiment/internal/adapter/file"
	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the geography, lexicon, and record files are consistent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := validationInput{
				regionsPath:  a.cfg.RegionsPath,
				nameProperty: a.cfg.RegionNameProperty,
				recordsPath:  a.cfg.RecordsPath,
			}
			lex, err := a.loadLexicon(cmd.Context())
			if err != nil {
				in.lexiconErr = err
			}
			in.lexicon = lex
			return runValidation(cmd.Context(), cmd.OutOrStdout(), in)
		},
	}
}

type validationInput struct {
	regionsPath  string
	nameProperty string
	recordsPath  string
	lexicon      domain.MapLexicon
	lexiconErr   error
}

func runValidation(ctx context.Context, w io.Writer, in validationInput) error {
	fmt.Fprintln(w, "=== Region Sentiment Data Validation ===")
	fmt.Fprintln(w)

	geoPhase := &phase{name: "Phase 1: Geography"}
	centers := validateGeography(geoPhase, in.regionsPath, in.nameProperty)

	lexPhase := &phase{name: "Phase 2: Lexicon"}
	if in.lexiconErr != nil {
		lexPhase.errorf("load lexicon: %v", in.lexiconErr)
	} else if len(in.lexicon) == 0 {
		lexPhase.errorf("lexicon has no words")
	}

	recPhase := &phase{name: "Phase 3: Records"}
	records := validateRecords(ctx, recPhase, in.recordsPath)

	assignPhase := &phase{name: "Phase 4: Assignment"}
	validateAssignment(assignPhase, records, centers)

	phases := []*phase{geoPhase, lexPhase, recPhase, assignPhase}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Regions: %d, words: %d, records: %d\n", len(centers), len(in.lexicon), len(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return errValidationFailed
}

// validateGeography checks every polygon individually so one bad ring does not
// hide the others, then computes the centers of the valid regions.
func validateGeography(p *phase, path, nameProperty string) domain.CenterMap {
	g, err := file.LoadGeography(path, nameProperty)
	if err != nil {
		p.errorf("load geography: %v", err)
		return nil
	}
	if len(g) == 0 {
		p.errorf("geography has no regions")
	}

	centers := make(domain.CenterMap, len(g))
	for name, polygons := range g {
		valid := true
		for i, poly := range polygons {
			if err := poly.Validate(); err != nil {
				p.errorf("region %s polygon %d: %v", name, i, err)
				valid = false
			}
		}
		if !valid {
			continue
		}
		c, err := domain.WeightedCenter(polygons)
		if err != nil {
			p.errorf("region %s: %v", name, err)
			continue
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			p.errorf("region %s: center %v is off the globe (are coordinates [lon, lat]?)", name, c)
		}
		centers[name] = c
	}
	return centers
}

func validateRecords(ctx context.Context, p *phase, path string) []domain.Record {
	records, err := file.NewRecordSource(path).Records(ctx, "")
	if err != nil {
		p.errorf("load records: %v", err)
		return nil
	}
	if len(records) == 0 {
		p.errorf("record file has no records")
	}
	for i, r := range records {
		if r.Location.Lat < -90 || r.Location.Lat > 90 || r.Location.Lon < -180 || r.Location.Lon > 180 {
			p.errorf("record %d: location %v is off the globe", i+1, r.Location)
		}
	}
	return records
}

func validateAssignment(p *phase, records []domain.Record, centers domain.CenterMap) {
	if len(centers) == 0 {
		p.errorf("no region centers to assign records to")
		return
	}
	assignment := domain.Cluster(records, centers)
	if got := assignment.Count(); got != len(records) {
		p.errorf("assigned %d of %d records", got, len(records))
	}
	for name, group := range assignment {
		if len(group) == 0 {
			p.errorf("region %s is present with no records", name)
		}
	}
}
