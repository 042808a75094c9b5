// SPDX-License-Identifier: MIT

package experiment

import (
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/multiplicity/config"
	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/epsilon"
	"github.com/katalvlaran/multiplicity/glyph"
	"github.com/katalvlaran/multiplicity/linear"
	"github.com/katalvlaran/multiplicity/render"
	"github.com/katalvlaran/multiplicity/svm"
)

// FigureSize is the edge length of every square figure.
const FigureSize = 10 * vg.Centimeter

// Report summarises one classification scenario.
type Report struct {
	Scenario         string
	Baseline         *linear.Classifier
	Members          []*linear.Classifier
	BaselineAccuracy float64
	Accuracies       []float64
	Complete         bool
	Ambiguity        float64
	Discrepancy      float64
	Figures          []string // written files, in order
}

// Runner executes scenarios with one configuration. Not safe for
// concurrent use.
type Runner struct {
	cfg     *config.Config
	log     *zap.Logger
	palette glyph.Palette
	geom    glyph.Geometry
}

// NewRunner returns a runner writing into cfg.OutputDir. A nil logger
// discards log output. Panics on a nil cfg.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	if cfg == nil {
		panic("experiment: NewRunner(nil config)")
	}
	if log == nil {
		log = zap.NewNop()
	}
	geom := glyph.DefaultGeometry().Scale(cfg.Glyph.Size)
	geom.Ring = cfg.Glyph.Ring

	return &Runner{cfg: cfg, log: log, palette: glyph.DefaultPalette, geom: geom}
}

// XOR evaluates the hand-built XOR epsilon set on the 10×10 mesh and writes
// xor_data, xor_classifiers and xor_glyphs.
func (r *Runner) XOR() (*Report, error) {
	ds, err := XORData()
	if err != nil {
		return nil, errors.Wrap(err, "xor: dataset")
	}
	h0, candidates := XORExample()
	rep, err := r.evaluate("xor", ds, h0, epsilon.FromSlice(candidates), len(candidates))
	if err != nil {
		return nil, err
	}

	data := render.NewFigure("XOR", render.UnitBox)
	if err := r.shadeXOR(data, ds); err != nil {
		return nil, errors.Wrap(err, "xor: data figure")
	}
	if err := r.save(rep, data, "xor_data"); err != nil {
		return nil, err
	}

	withLines := render.NewFigure("XOR", render.UnitBox)
	if err := r.shadeXOR(withLines, ds); err != nil {
		return nil, errors.Wrap(err, "xor: classifier figure")
	}
	if err := r.boundaries(withLines, rep.Baseline, rep.Members); err != nil {
		return nil, errors.Wrap(err, "xor: classifier figure")
	}
	if err := r.save(rep, withLines, "xor_classifiers"); err != nil {
		return nil, err
	}

	gs, err := glyph.ForRows(r.palette, ds, rep.Baseline, rep.Members, XORGlyphRows)
	if err != nil {
		return nil, errors.Wrap(err, "xor: glyphs")
	}
	withGlyphs := render.NewFigure("XOR", render.UnitBox)
	if err := r.shadeXOR(withGlyphs, ds); err != nil {
		return nil, errors.Wrap(err, "xor: glyph figure")
	}
	if err := r.boundaries(withGlyphs, rep.Baseline, rep.Members); err != nil {
		return nil, errors.Wrap(err, "xor: glyph figure")
	}
	withGlyphs.Glyphs(gs, r.geom)
	if err := r.save(rep, withGlyphs, "xor_glyphs"); err != nil {
		return nil, err
	}

	return rep, nil
}

// XORSeries evaluates the XOR epsilon set like XOR and writes the step by
// step figures: prediction_baseline with the half planes of h0,
// with_<n>_classifiers for n = 0..len(members), and pm_for_all with a glyph
// at every mesh point.
func (r *Runner) XORSeries() (*Report, error) {
	ds, err := XORData()
	if err != nil {
		return nil, errors.Wrap(err, "xor series: dataset")
	}
	h0, candidates := XORExample()
	rep, err := r.evaluate("xor_series", ds, h0, epsilon.FromSlice(candidates), len(candidates))
	if err != nil {
		return nil, err
	}

	base := render.NewFigure("XOR", render.UnitBox)
	if err := base.ShadeHalfPlane(h0, r.palette.True, render.ShadeAlpha); err != nil {
		return nil, errors.Wrap(err, "xor series: baseline figure")
	}
	if err := base.ShadeHalfPlane(negate(h0), r.palette.False, render.ShadeAlpha); err != nil {
		return nil, errors.Wrap(err, "xor series: baseline figure")
	}
	if err := base.Scatter(ds, r.palette); err != nil {
		return nil, errors.Wrap(err, "xor series: baseline figure")
	}
	if err := r.boundaries(base, h0, nil); err != nil {
		return nil, errors.Wrap(err, "xor series: baseline figure")
	}
	if err := r.save(rep, base, "prediction_baseline"); err != nil {
		return nil, err
	}

	for n := 0; n <= len(rep.Members); n++ {
		f := render.NewFigure("XOR", render.UnitBox)
		if err := r.shadeXOR(f, ds); err != nil {
			return nil, errors.Wrapf(err, "xor series: %d classifiers", n)
		}
		if err := r.boundaries(f, h0, rep.Members[:n]); err != nil {
			return nil, errors.Wrapf(err, "xor series: %d classifiers", n)
		}
		if err := r.save(rep, f, "with_"+strconv.Itoa(n)+"_classifiers"); err != nil {
			return nil, err
		}
	}

	gs, err := glyph.ForRows(r.palette, ds, h0, rep.Members, allRows(ds))
	if err != nil {
		return nil, errors.Wrap(err, "xor series: glyphs")
	}
	all := render.NewFigure("XOR", render.UnitBox)
	if err := r.shadeXOR(all, ds); err != nil {
		return nil, errors.Wrap(err, "xor series: glyph figure")
	}
	if err := r.boundaries(all, h0, rep.Members); err != nil {
		return nil, errors.Wrap(err, "xor series: glyph figure")
	}
	all.Glyphs(gs, r.geom)
	if err := r.save(rep, all, "pm_for_all"); err != nil {
		return nil, err
	}

	return rep, nil
}

// xorQuadrants are the four label regions of the XOR mesh.
var xorQuadrants = []struct {
	box   render.Box
	truth bool
}{
	{render.Box{XMin: -1, XMax: 0, YMin: 0, YMax: 1}, true},
	{render.Box{XMin: 0, XMax: 1, YMin: -1, YMax: 0}, true},
	{render.Box{XMin: -1, XMax: 0, YMin: -1, YMax: 0}, false},
	{render.Box{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, false},
}

// shadeXOR shades the XOR quadrants by label and scatters ds on top.
func (r *Runner) shadeXOR(f *render.Figure, ds *dataset.Dataset) error {
	for _, q := range xorQuadrants {
		if err := f.ShadeBox(q.box, r.palette.ColorOf(q.truth), render.ShadeAlpha); err != nil {
			return err
		}
	}

	return f.Scatter(ds, r.palette)
}

// negate returns the classifier predicting the opposite half plane of c.
func negate(c *linear.Classifier) *linear.Classifier {
	w := c.Weight()
	for i := range w {
		w[i] = -w[i]
	}

	return linear.MustNew(w, -c.Bias())
}

// Diag evaluates the diagonal-border epsilon set on cfg.Samples points and
// writes diag_border with glyphs on 15 uniform test points.
func (r *Runner) Diag() (*Report, error) {
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	ds, err := dataset.Diag(r.cfg.Samples, dataset.WithRand(rng))
	if err != nil {
		return nil, errors.Wrap(err, "diag: dataset")
	}
	h0, candidates := DiagExample()
	rep, err := r.evaluate("diag", ds, h0, epsilon.FromSlice(candidates), len(candidates))
	if err != nil {
		return nil, err
	}

	f := render.NewFigure("diagonal border", render.UnitBox)
	if err := f.ShadeHalfPlane(h0, r.palette.True, render.ShadeAlpha); err != nil {
		return nil, errors.Wrap(err, "diag: shade")
	}
	if err := f.ShadeHalfPlane(negate(h0), r.palette.False, render.ShadeAlpha); err != nil {
		return nil, errors.Wrap(err, "diag: shade")
	}
	if err := f.Scatter(ds, r.palette); err != nil {
		return nil, errors.Wrap(err, "diag: scatter")
	}
	if err := r.boundaries(f, rep.Baseline, rep.Members); err != nil {
		return nil, errors.Wrap(err, "diag: boundaries")
	}

	test, err := dataset.Uniform(15, dataset.WithRand(rng), dataset.WithLabels(dataset.RightHalf))
	if err != nil {
		return nil, errors.Wrap(err, "diag: test points")
	}
	gs, err := glyph.ForRows(r.palette, test, rep.Baseline, rep.Members, allRows(test))
	if err != nil {
		return nil, errors.Wrap(err, "diag: glyphs")
	}
	f.Glyphs(gs, r.geom)
	if err := r.save(rep, f, "diag_border"); err != nil {
		return nil, err
	}

	return rep, nil
}

// Fitted fits a Pegasos baseline on the configured dataset and fills the
// epsilon set with refits, on bootstrap resamples unless cfg.Resample is
// "none". With cfg.SVM.Exact the baseline bias is re-derived from its
// support vectors first. Writes fitted_<sampling>.
func (r *Runner) Fitted() (*Report, error) {
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	ds, err := r.sample(rng)
	if err != nil {
		return nil, errors.Wrap(err, "fitted: dataset")
	}

	fit := svm.NewPegasos(
		svm.WithLambda(r.cfg.SVM.Lambda),
		svm.WithEpochs(r.cfg.SVM.Epochs),
		svm.WithSeed(r.cfg.Seed),
	)
	h0, err := fit.Fit(ds)
	if err != nil {
		return nil, errors.Wrap(err, "fitted: baseline")
	}
	if r.cfg.SVM.Exact {
		refit, err := svm.NewExact(h0).Fit(ds)
		if err != nil {
			return nil, errors.Wrap(err, "fitted: exact bias")
		}
		r.log.Debug("exact bias", zap.Float64("pegasos", h0.Bias()), zap.Float64("exact", refit.Bias()))
		h0 = refit
	}

	var gen epsilon.Generator[*linear.Classifier]
	if r.cfg.Resample == config.ResampleNone {
		gen = epsilon.FromFitter(fit, ds)
	} else {
		gen = epsilon.Bootstrap(fit, ds, rng)
	}
	rep, err := r.evaluate("fitted_"+r.cfg.Sampling, ds, h0, gen, 0)
	if err != nil {
		return nil, err
	}

	f := render.NewFigure("fitted ("+r.cfg.Sampling+")", render.UnitBox)
	if err := f.ShadeHalfPlane(h0, r.palette.True, render.ShadeAlpha); err != nil {
		return nil, errors.Wrap(err, "fitted: shade")
	}
	if err := f.Scatter(ds, r.palette); err != nil {
		return nil, errors.Wrap(err, "fitted: scatter")
	}
	if err := r.boundaries(f, rep.Baseline, rep.Members); err != nil {
		return nil, errors.Wrap(err, "fitted: boundaries")
	}
	gs, err := glyph.ForRows(r.palette, ds, rep.Baseline, rep.Members, allRows(ds))
	if err != nil {
		return nil, errors.Wrap(err, "fitted: glyphs")
	}
	f.Glyphs(glyph.Spread(gs, 2*r.geom.Outer()), r.geom)
	if err := r.save(rep, f, "fitted_"+r.cfg.Sampling); err != nil {
		return nil, err
	}

	return rep, nil
}

// Legend writes the glyph legend figure and returns its path.
func (r *Runner) Legend() (string, error) {
	f, err := render.Legend(r.palette)
	if err != nil {
		return "", errors.Wrap(err, "legend")
	}
	rep := &Report{Scenario: "legend"}
	if err := r.save(rep, f, "glyph_legend"); err != nil {
		return "", err
	}

	return rep.Figures[0], nil
}

// evaluate builds the epsilon set and its multiplicity metrics. A positive
// fixed is the size of a hand-built candidate list: every candidate is
// scored whatever the configured target and attempt budget.
func (r *Runner) evaluate(name string, ds *dataset.Dataset, h0 *linear.Classifier, gen epsilon.Generator[*linear.Classifier], fixed int) (*Report, error) {
	opts := r.cfg.EpsilonOptions()
	opts.Logger = r.log.Named(name)
	if fixed > 0 {
		opts.TargetCount, opts.MaxAttempts = fixed, fixed
	}

	// the first call scores the baseline, the rest are candidates
	score := epsilon.AccuracyOn[*linear.Classifier](ds)
	var trace []float64
	calls := 0
	recording := func(c *linear.Classifier) (float64, error) {
		acc, err := score(c)
		if calls++; calls > 1 && err == nil {
			trace = append(trace, acc)
		}
		return acc, err
	}
	res, err := epsilon.Build(h0, gen, recording, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: epsilon set", name)
	}
	rep := &Report{
		Scenario:         name,
		Baseline:         h0,
		Members:          res.Members,
		BaselineAccuracy: res.BaselineAccuracy,
		Accuracies:       res.Accuracies,
		Complete:         res.Complete(),
	}
	if len(trace) > 0 {
		if err := r.saveTrace(rep, trace); err != nil {
			return nil, err
		}
	}
	if rep.Ambiguity, err = epsilon.Ambiguity(h0, res.Members, ds); err != nil {
		return nil, errors.Wrapf(err, "%s: ambiguity", name)
	}
	if rep.Discrepancy, err = epsilon.Discrepancy(h0, res.Members, ds); err != nil {
		return nil, errors.Wrapf(err, "%s: discrepancy", name)
	}

	r.log.Info("baseline", zap.String("scenario", name), zap.Stringer("h0", h0), zap.Float64("accuracy", rep.BaselineAccuracy))
	for i, m := range rep.Members {
		r.log.Info("epsilon member",
			zap.String("scenario", name),
			zap.Int("member", i+1),
			zap.Stringer("h", m),
			zap.Float64("accuracy", rep.Accuracies[i]),
		)
	}
	if !rep.Complete {
		r.log.Warn("epsilon set incomplete",
			zap.String("scenario", name),
			zap.Int("members", len(rep.Members)),
			zap.Int("target", res.Target),
			zap.Int("attempts", res.Attempts),
		)
	}
	r.log.Info("multiplicity",
		zap.String("scenario", name),
		zap.Float64("ambiguity", rep.Ambiguity),
		zap.Float64("discrepancy", rep.Discrepancy),
	)

	return rep, nil
}

// boundaries draws h0 in black, then every member in palette order.
func (r *Runner) boundaries(f *render.Figure, h0 *linear.Classifier, members []*linear.Classifier) error {
	if err := f.Boundary(h0, color.Black, "h0"); err != nil && !errors.Is(err, render.ErrNoBoundary) {
		return err
	}
	for i, m := range members {
		err := f.Boundary(m, nil, "h"+strconv.Itoa(i+1))
		if errors.Is(err, render.ErrNoBoundary) {
			r.log.Debug("boundary outside box", zap.Stringer("h", m))
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) sample(rng *rand.Rand) (*dataset.Dataset, error) {
	switch r.cfg.Sampling {
	case config.SamplingUniform:
		return dataset.Uniform(r.cfg.Samples, dataset.WithRand(rng), dataset.WithLabels(dataset.BelowDiagonal))
	case config.SamplingDiag:
		return dataset.Diag(r.cfg.Samples, dataset.WithRand(rng))
	default:
		return dataset.Mesh(r.cfg.Samples, dataset.WithLabels(dataset.BelowDiagonal))
	}
}

func (r *Runner) save(rep *Report, f *render.Figure, name string) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "%s: output dir", rep.Scenario)
	}
	path := filepath.Join(r.cfg.OutputDir, name+"."+r.cfg.Format)
	if err := f.Save(path, FigureSize, FigureSize); err != nil {
		return errors.Wrapf(err, "%s", rep.Scenario)
	}
	r.log.Info("figure written", zap.String("scenario", rep.Scenario), zap.String("path", path))
	rep.Figures = append(rep.Figures, path)

	return nil
}

// saveTrace charts every scored candidate; always PNG.
func (r *Runner) saveTrace(rep *Report, trace []float64) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "%s: output dir", rep.Scenario)
	}
	path := filepath.Join(r.cfg.OutputDir, rep.Scenario+"_trace.png")
	err := render.SearchTrace(path, rep.Scenario+" epsilon search", rep.BaselineAccuracy, r.cfg.Epsilon, trace)
	if err != nil {
		return errors.Wrapf(err, "%s", rep.Scenario)
	}
	r.log.Info("figure written", zap.String("scenario", rep.Scenario), zap.String("path", path))
	rep.Figures = append(rep.Figures, path)

	return nil
}

func allRows(ds *dataset.Dataset) []int {
	idx := make([]int, ds.Len())
	for i := range idx {
		idx[i] = i
	}

	return idx
}
