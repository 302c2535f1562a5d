// Package reconcile selects the best identification per compound across the
// two acquisition modes. Both polarities can identify the same compound; the
// reconciler keeps whichever mode scored it higher, so the final table has
// one authoritative row per compound (or several, when modes tie exactly).
package reconcile

import (
	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Reconciler is the interface for reconciling merged tables from the two
// acquisition modes.
type Reconciler interface {
	// Reconcile combines two per-mode merged tables into one
	// best-hit-per-compound table.
	Reconcile(pos, neg *tables.Table) (*tables.Table, error)
}

// reconciler is the default implementation of Reconciler
type reconciler struct {
	key string
}

// Option configures a Reconciler
type Option func(*reconciler) error

// New creates a new Reconciler with options. The default grouping key is the
// Compound column.
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		key: constants.DefaultGroupKey,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// WithKeyColumn sets the column reconciliation groups by.
func WithKeyColumn(name string) Option {
	return func(r *reconciler) error {
		if name == "" {
			return errors.NewConfigurationError("key_column", name, "must not be empty")
		}
		r.key = name
		return nil
	}
}

// Reconcile concatenates the two inputs (pos rows first), groups rows by the
// key column, and per group keeps the rows tied for the highest Score,
// narrowed to the highest Fragmentation_Score when more than one survives.
// Residual exact ties are all retained in input order. Groups without any
// numeric Score are dropped. Empty inputs (nil or zero rows) contribute
// nothing and are exempt from the schema check, which makes reconciling an
// already-reconciled table with an empty one a no-op.
func (r *reconciler) Reconcile(pos, neg *tables.Table) (*tables.Table, error) {
	if err := r.checkSchema("pos", pos); err != nil {
		return nil, err
	}
	if err := r.checkSchema("neg", neg); err != nil {
		return nil, err
	}

	combined := stack(pos, neg)
	if combined == nil {
		return tables.New()
	}

	keyCol, ok := combined.Column(r.key)
	if !ok {
		// unreachable after the schema checks, but keep the failure typed
		return nil, errors.NewSchemaMismatchError("combined", []string{r.key})
	}
	scoreCol, _ := combined.Column(constants.ColScore)
	fragCol, _ := combined.Column(constants.ColFragmentationScore)

	// Group rows by key export string in first-appearance order.
	groupOf := make(map[string][]int)
	var groupOrder []string
	for i := 0; i < combined.Len(); i++ {
		k := keyCol.Cells[i].String()
		if _, seen := groupOf[k]; !seen {
			groupOrder = append(groupOrder, k)
		}
		groupOf[k] = append(groupOf[k], i)
	}

	var keep []int
	for _, k := range groupOrder {
		keep = append(keep, bestRows(groupOf[k], scoreCol, fragCol)...)
	}

	out := combined.Take(keep).MoveToFront(r.key, constants.ColPolarity)

	logging.Debug().
		Int("input_rows", combined.Len()).
		Int("groups", len(groupOrder)).
		Int("output_rows", out.Len()).
		Msg("reconciled acquisition modes")

	return out, nil
}

// bestRows returns the group's rows tied for the maximum Score, narrowed to
// the maximum Fragmentation_Score when several survive. A group with no
// numeric Score yields nothing; a survivor set with no numeric
// Fragmentation_Score is not narrowed.
func bestRows(rows []int, score, frag tables.Column) []int {
	best, found := 0.0, false
	for _, i := range rows {
		if n, ok := score.Cells[i].AsNumber(); ok && (!found || n > best) {
			best, found = n, true
		}
	}
	if !found {
		return nil
	}

	var survivors []int
	for _, i := range rows {
		if n, ok := score.Cells[i].AsNumber(); ok && n == best {
			survivors = append(survivors, i)
		}
	}
	if len(survivors) <= 1 {
		return survivors
	}

	fragBest, found := 0.0, false
	for _, i := range survivors {
		if n, ok := frag.Cells[i].AsNumber(); ok && (!found || n > fragBest) {
			fragBest, found = n, true
		}
	}
	if !found {
		return survivors
	}

	var narrowed []int
	for _, i := range survivors {
		if n, ok := frag.Cells[i].AsNumber(); ok && n == fragBest {
			narrowed = append(narrowed, i)
		}
	}
	return narrowed
}

// checkSchema verifies a non-empty input carries the grouping and scoring
// columns. Empty inputs are exempt.
func (r *reconciler) checkSchema(input string, t *tables.Table) error {
	if t == nil || t.Len() == 0 {
		return nil
	}

	var missing []string
	for _, req := range []string{r.key, constants.ColScore, constants.ColFragmentationScore} {
		if !t.Has(req) {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return errors.NewSchemaMismatchError(input, missing)
	}
	return nil
}

// stack concatenates the non-empty inputs, pos rows first. Returns nil when
// both are empty.
func stack(pos, neg *tables.Table) *tables.Table {
	if pos == nil || pos.Len() == 0 {
		pos = nil
	}
	if neg == nil || neg.Len() == 0 {
		neg = nil
	}

	switch {
	case pos == nil && neg == nil:
		return nil
	case pos == nil:
		return neg
	case neg == nil:
		return pos
	default:
		return pos.Stack(neg)
	}
}
