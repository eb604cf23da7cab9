package timing

import "time"

// Stages maps named stages to elapsed seconds.
type Stages map[string]float64

// Merge copies every entry of other into s under the given key prefix.
func (s Stages) Merge(prefix string, other Stages) {
	for k, v := range other {
		s[prefix+k] = v
	}
}

// Recorder collects stage durations for one operation. Every stage
// named at construction is present in the final mapping, reported as 0
// when the stage was never reached.
type Recorder struct {
	stages Stages
}

func NewRecorder(stages ...string) *Recorder {
	m := make(Stages, len(stages))
	for _, k := range stages {
		m[k] = 0
	}
	return &Recorder{stages: m}
}

// Track starts timing a stage and returns the function that stops it.
// Typical use: stop := rec.Track("llm_request_time"); ...; stop()
func (r *Recorder) Track(stage string) func() {
	start := time.Now()
	return func() {
		r.stages[stage] = time.Since(start).Seconds()
	}
}

// Set overrides a stage value, e.g. for derived rates.
func (r *Recorder) Set(stage string, value float64) {
	r.stages[stage] = value
}

func (r *Recorder) Seconds(stage string) float64 {
	return r.stages[stage]
}

func (r *Recorder) Stages() Stages {
	return r.stages
}
