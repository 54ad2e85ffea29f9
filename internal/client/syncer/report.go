package syncer

// Phase names a stage of a sync run.
type Phase string

const (
	PhaseUpload   Phase = "upload"
	PhaseDownload Phase = "download"
	PhaseVerify   Phase = "verify"
)

// EntryFailure is one per-entry error collected during a run. EntryID is
// empty for failures that hit a whole phase, such as a failed listing.
type EntryFailure struct {
	EntryID string
	Phase   Phase
	Err     error
}

// Report is the outcome of Synchronize.
type Report struct {
	Processed     int
	Succeeded     int
	Uploaded      int
	Downloaded    int
	ImageFailures int
	Failures      []EntryFailure
}

// Failed is the number of processed entries that were not confirmed in sync.
func (r Report) Failed() int {
	return r.Processed - r.Succeeded
}

// Observer receives advisory progress notifications. Both callbacks are
// optional.
type Observer struct {
	OnPhaseChange func(phase Phase)
	OnProgress    func(phase Phase, current, total int)
}

func (o Observer) phase(p Phase) {
	if o.OnPhaseChange != nil {
		o.OnPhaseChange(p)
	}
}

func (o Observer) progress(p Phase, current, total int) {
	if o.OnProgress != nil {
		o.OnProgress(p, current, total)
	}
}

// run accumulates per-entry results of one Synchronize call.
type run struct {
	userID string
	report Report
	order  []string
	seen   map[string]struct{}
	failed map[string]struct{}
}

func newRun(userID string) *run {
	return &run{
		userID: userID,
		seen:   make(map[string]struct{}),
		failed: make(map[string]struct{}),
	}
}

func (r *run) touch(id string) {
	if _, ok := r.seen[id]; ok {
		return
	}
	r.seen[id] = struct{}{}
	r.order = append(r.order, id)
}

func (r *run) fail(id string, phase Phase, err error) {
	r.report.Failures = append(r.report.Failures, EntryFailure{EntryID: id, Phase: phase, Err: err})
	if id != "" {
		r.failed[id] = struct{}{}
	}
}

func (r *run) hasFailed(id string) bool {
	_, ok := r.failed[id]
	return ok
}

func (r *run) result() Report {
	rep := r.report
	rep.Processed = len(r.order)
	return rep
}
