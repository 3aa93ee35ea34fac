package driver

// Phase names a stage of a lint run.
type Phase string

const (
	PhaseDiscover Phase = "discover"
	PhaseParse    Phase = "parse"
	PhaseLint     Phase = "lint"
	PhaseRender   Phase = "render"
	PhaseDone     Phase = "done"
)

// ProgressEvent reports one finished step. Total is set on the event that
// opens a phase; Path on per-file events.
type ProgressEvent struct {
	Phase Phase
	Path  string
	Total int
}

// ProgressFunc receives progress events. It is called from parse workers
// concurrently and must be safe for that.
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
