// Package compare normalizes raw benchmark output and judges it against baselines.
//
// The external tool's result schema drifts across versions, so each canonical
// metric is resolved through an ordered list of candidate keys with a zero
// default. A missing metric degrades silently to zero rather than aborting:
// zero trivially fails every "must be at least" check, which is the intended
// worst-case reading.
package compare

import (
	"encoding/json"

	"github.com/beshkenadze/FluidAudio/internal/baseline"
	"github.com/beshkenadze/FluidAudio/internal/bench"
)

// MetricVerdict is the judged outcome of one metric for one benchmark kind.
// Baseline carries the reference value before tolerance is applied so output
// can show both numbers side by side.
type MetricVerdict struct {
	Name     string
	Observed float64
	Baseline float64
	Passed   bool
	Unit     string
}

// KindVerdict groups the quality and throughput verdicts for one benchmark.
type KindVerdict struct {
	Kind        bench.Kind
	Description string
	Quality     MetricVerdict
	Throughput  MetricVerdict
}

// rule describes how one benchmark kind is normalized and judged.
type rule struct {
	qualityName   string
	qualityKeys   []string
	qualityScale  float64 // 100 for fraction-valued metrics, 1 for percentages
	lowerIsBetter bool
	qualityTol    float64 // tolerance multiplier applied to the quality baseline
	rtfxKeys      []string
	rtfxSlack     float64 // slack multiplier applied to the throughput baseline
}

var rules = map[bench.Kind]rule{
	bench.KindASR: {
		qualityName:   "WER",
		qualityKeys:   []string{"wer", "average_wer"},
		qualityScale:  100,
		lowerIsBetter: true,
		qualityTol:    1.1,
		rtfxKeys:      []string{"rtfx", "median_rtfx"},
		rtfxSlack:     0.8,
	},
	bench.KindVAD: {
		qualityName:   "F1",
		qualityKeys:   []string{"f1_score"},
		qualityScale:  1,
		lowerIsBetter: false,
		qualityTol:    0.9,
		rtfxKeys:      []string{"rtfx"},
		rtfxSlack:     0.5,
	},
	bench.KindDiarization: {
		qualityName:   "DER",
		qualityKeys:   []string{"der", "average_der"},
		qualityScale:  100,
		lowerIsBetter: true,
		qualityTol:    1.2,
		rtfxKeys:      []string{"rtfx", "average_rtfx"},
		rtfxSlack:     1.0,
	},
}

// Judge compares every present, non-absent result against its baseline and
// returns one verdict per judged kind, in fixed benchmark order. Judging is
// purely advisory: it never fails and never blocks subsequent steps.
func Judge(results map[bench.Kind]*bench.Result, baselines baseline.Set) []KindVerdict {
	verdicts := make([]KindVerdict, 0, len(results))

	for _, kind := range bench.AllKinds() {
		res, ok := results[kind]
		if !ok || res == nil || res.Raw == nil {
			continue
		}

		base, ok := baselines[kind]
		if !ok {
			continue
		}

		verdicts = append(verdicts, judgeKind(kind, res.Raw, base))
	}

	return verdicts
}

func judgeKind(kind bench.Kind, raw map[string]any, base baseline.Baseline) KindVerdict {
	r := rules[kind]

	quality := metricValue(raw, r.qualityKeys...) * r.qualityScale
	rtfx := metricValue(raw, r.rtfxKeys...)

	qualityPassed := quality >= base.QualityPercent*r.qualityTol
	if r.lowerIsBetter {
		qualityPassed = quality <= base.QualityPercent*r.qualityTol
	}

	return KindVerdict{
		Kind:        kind,
		Description: base.Description,
		Quality: MetricVerdict{
			Name:     r.qualityName,
			Observed: quality,
			Baseline: base.QualityPercent,
			Passed:   qualityPassed,
			Unit:     "%",
		},
		Throughput: MetricVerdict{
			Name:     "RTFx",
			Observed: rtfx,
			Baseline: base.RTFxMin,
			Passed:   rtfx >= base.RTFxMin*r.rtfxSlack,
			Unit:     "x",
		},
	}
}

// metricValue resolves a metric through candidate keys, first match wins.
// Keys holding non-numeric values are skipped; nothing usable yields zero.
func metricValue(raw map[string]any, keys ...string) float64 {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok {
			continue
		}

		switch n := value.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f
			}
		}
	}

	return 0
}
