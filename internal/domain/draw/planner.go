package draw

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/okian/fairdraw/internal/domain/model"
	"github.com/okian/fairdraw/pkg/logger"
)

// Targets maps each participant to the number of matches they must play.
type Targets map[string]int

// Sum returns the total degree over every participant.
func (t Targets) Sum() int {
	s := 0
	for _, d := range t {
		s += d
	}
	return s
}

// GroupSum returns the total degree of g's members.
func (t Targets) GroupSum(g model.Group) int {
	s := 0
	for _, p := range g.Participants {
		s += t[p]
	}
	return s
}

// Result is the unordered outcome of Build.
type Result struct {
	Matches []model.Match
	Counts  map[string]int
	Average float64
	Report  model.Report
}

// Plan is the full pipeline outcome: Result with its matches sequenced.
type Plan struct {
	Sequence []model.Match
	Counts   map[string]int
	Average  float64
	Report   model.Report
}

// Planner runs the draw pipeline. A Planner owns its random source and is
// not safe for concurrent use.
type Planner struct {
	rng    *rand.Rand
	logger logger.Logger
}

// NewPlanner creates a Planner. Without options it is seeded with the
// default seed and logs nothing.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		rng:    newRand(defaultRandomSeed),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Targets computes the degree target of every participant so that the sum
// is 2*targetTotal and counts differ by at most one wherever parity allows.
// The returned Report lists the recovery steps that had to run.
func (p *Planner) Targets(ctx context.Context, roster model.Roster, targetTotal int) (Targets, model.Report, error) {
	var report model.Report
	if targetTotal < 0 {
		return nil, report, fmt.Errorf("%w: %d", ErrNegativeTotal, targetTotal)
	}
	if err := roster.Validate(); err != nil {
		return nil, report, err
	}

	n := roster.Len()
	if n == 0 {
		return Targets{}, report, nil
	}

	twoT := 2 * targetTotal
	q, r := twoT/n, twoT%n
	sizes := groupSizes(roster)

	extras, ok := AllocateExtras(sizes, q, r)
	if !ok {
		extras = fallbackExtras(sizes, r)
		report.AllocatorFallback = true
		p.logger.Warn(ctx, "parity allocation infeasible, using fallback distribution",
			logger.Int("q", q), logger.Int("r", r), logger.Int("groups", len(sizes)))
	}
	p.logger.Debug(ctx, "base allocation", logger.Int("q", q), logger.Int("r", r), logger.Any("extras", extras))

	targets := make(Targets, n)
	for _, g := range roster {
		for _, name := range g.Participants {
			targets[name] = q
		}
		k := extras[g.Name]
		for _, idx := range p.rng.Perm(len(g.Participants))[:k] {
			targets[g.Participants[idx]]++
		}
	}

	order := roster.Participants()
	switch sum := targets.Sum(); {
	case sum < twoT:
		report.DeficitFilled = fillDeficit(targets, order, twoT-sum, p.rng)
	case sum > twoT:
		report.ExcessTrimmed, report.ForcedTrims = trimExcess(targets, order, sum-twoT)
	}
	if report.ForcedTrims > 0 {
		p.logger.Error(ctx, "degree targets forced below zero", logger.Int("forced", report.ForcedTrims))
	}

	report.OddGroupsFixed = fixOddGroups(roster, targets)
	report.DominantRebalanced = rebalanceDominant(roster, targets)
	if report.OddGroupsFixed > 0 || report.DominantRebalanced > 0 {
		p.logger.Info(ctx, "group degree targets corrected",
			logger.Int("odd_groups", report.OddGroupsFixed),
			logger.Int("rebalanced", report.DominantRebalanced))
	}

	return targets, report, nil
}

// Build computes targets, realizes every group and forces the match count to
// exactly targetTotal.
func (p *Planner) Build(ctx context.Context, roster model.Roster, targetTotal int) (Result, error) {
	targets, report, err := p.Targets(ctx, roster, targetTotal)
	if err != nil {
		return Result{}, err
	}
	n := roster.Len()
	if n == 0 {
		return Result{Counts: map[string]int{}, Report: report}, nil
	}

	matches := make([]model.Match, 0, targetTotal)
	for _, g := range roster {
		gm, err := RealizeGroup(g, targets)
		if err != nil {
			return Result{}, err
		}
		matches = append(matches, gm...)
	}

	matches, report.Truncated = truncateMatches(matches, targetTotal)
	matches, report.Padded, err = padMatches(roster, matches, targetTotal, p.rng)
	if err != nil {
		return Result{}, err
	}
	if report.Truncated > 0 || report.Padded > 0 {
		p.logger.Info(ctx, "match count corrected",
			logger.Int("truncated", report.Truncated),
			logger.Int("padded", report.Padded),
			logger.Int("target_total", targetTotal))
	}

	return Result{
		Matches: matches,
		Counts:  countMatches(roster, matches),
		Average: float64(2*targetTotal) / float64(n),
		Report:  report,
	}, nil
}

// Draw runs the whole pipeline: Build followed by Sequence.
func (p *Planner) Draw(ctx context.Context, roster model.Roster, targetTotal int) (Plan, error) {
	res, err := p.Build(ctx, roster, targetTotal)
	if err != nil {
		return Plan{}, err
	}
	seq := Sequence(res.Matches, p.rng)
	res.Report.ForcedRepeats = seq.ForcedRepeats
	if seq.ForcedRepeats > 0 {
		p.logger.Debug(ctx, "sequence contains back-to-back appearances", logger.Int("forced_repeats", seq.ForcedRepeats))
	}
	return Plan{
		Sequence: seq.Matches,
		Counts:   res.Counts,
		Average:  res.Average,
		Report:   res.Report,
	}, nil
}

func groupSizes(roster model.Roster) []GroupSize {
	sizes := make([]GroupSize, len(roster))
	for i, g := range roster {
		sizes[i] = GroupSize{Name: g.Name, Size: g.Size()}
	}
	return sizes
}

// countMatches returns each roster participant's appearance count,
// including zeros.
func countMatches(roster model.Roster, matches []model.Match) map[string]int {
	counts := make(map[string]int, roster.Len())
	for _, name := range roster.Participants() {
		counts[name] = 0
	}
	for _, m := range matches {
		counts[m.A]++
		counts[m.B]++
	}
	return counts
}
