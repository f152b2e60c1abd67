// Package pipeline runs one render from dataset key to scene: resolve, fetch,
// build. Each run moves from awaiting to exactly one terminal state.
package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/history"
	"github.com/ziadkadry99/treemap/internal/render"
)

// State is the lifecycle state of a run.
type State int

const (
	// Awaiting is entered as soon as the fetch is issued.
	Awaiting State = iota
	// Rendered is terminal: the scene was built.
	Rendered
	// Failed is terminal: the fetch or parse failed and nothing was drawn.
	Failed
)

func (s State) String() string {
	switch s {
	case Awaiting:
		return "awaiting"
	case Rendered:
		return "rendered"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// MarshalText lets states appear by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Loader fetches a document. *dataset.Loader implements it.
type Loader interface {
	Load(ctx context.Context, url string) (*dataset.Document, error)
}

// Recorder receives every finished run. *history.Store implements it.
type Recorder interface {
	Log(ctx context.Context, entry history.Entry) error
}

// Result is the outcome of one run. Scene is nil unless State is Rendered.
type Result struct {
	Key      string        `json:"key"`
	Dataset  dataset.ID    `json:"dataset"`
	URL      string        `json:"url"`
	State    State         `json:"state"`
	Scene    *render.Scene `json:"-"`
	Err      error         `json:"-"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
}

// Event is a state transition reported to watchers.
type Event struct {
	Key     string     `json:"key"`
	Dataset dataset.ID `json:"dataset"`
	URL     string     `json:"url"`
	State   State      `json:"state"`
	Leaves  int        `json:"leaves,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Runner executes runs. Recorder and Logger are optional.
type Runner struct {
	Loader   Loader
	Recorder Recorder
	Logger   *log.Logger
	// Format is recorded alongside each run.
	Format string

	mu       sync.Mutex
	nextID   int
	watchers map[int]func(Event)
}

// New returns a Runner that fetches with loader.
func New(loader Loader, recorder Recorder) *Runner {
	return &Runner{Loader: loader, Recorder: recorder}
}

// Run resolves key, fetches the document and builds its scene. Unknown keys
// fall back to the default dataset. It never panics on bad input; failures
// are logged once and reported through the result.
func (r *Runner) Run(ctx context.Context, key string, opts render.Options) *Result {
	id, url := dataset.Resolve(key)
	res := &Result{Key: key, Dataset: id, URL: url, State: Awaiting, Started: time.Now()}
	r.emit(res)

	doc, err := r.Loader.Load(ctx, url)
	return r.finish(ctx, res, doc, err, opts)
}

// RunFile renders a local document. The dataset id is left empty.
func (r *Runner) RunFile(ctx context.Context, path string, opts render.Options) *Result {
	res := &Result{Key: path, URL: path, State: Awaiting, Started: time.Now()}
	r.emit(res)

	doc, err := dataset.LoadFile(path)
	return r.finish(ctx, res, doc, err, opts)
}

func (r *Runner) finish(ctx context.Context, res *Result, doc *dataset.Document, err error, opts render.Options) *Result {
	if err == nil {
		res.Scene, err = render.Build(doc, opts)
	}
	res.Duration = time.Since(res.Started)

	if err != nil {
		res.State = Failed
		res.Err = err
		res.Scene = nil
		r.logger().Printf("pipeline: render of %s failed: %v", res.URL, err)
	} else {
		res.State = Rendered
	}

	r.record(ctx, res)
	r.emit(res)
	return res
}

func (r *Runner) record(ctx context.Context, res *Result) {
	if r.Recorder == nil {
		return
	}
	entry := history.Entry{
		Dataset:    string(res.Dataset),
		URL:        res.URL,
		Format:     r.Format,
		DurationMS: res.Duration.Milliseconds(),
	}
	if entry.Dataset == "" {
		entry.Dataset = "file"
	}
	if res.State == Rendered {
		entry.Outcome = history.OutcomeRendered
		entry.Leaves = len(res.Scene.Tiles)
		entry.Categories = res.Scene.Categories
	} else {
		entry.Outcome = history.OutcomeFailed
		entry.Error = res.Err.Error()
	}
	// A cancelled request context must not lose the record.
	if err := r.Recorder.Log(context.WithoutCancel(ctx), entry); err != nil {
		r.logger().Printf("pipeline: recording run: %v", err)
	}
}

// Watch registers fn for every state transition and returns a function that
// unregisters it. fn is called synchronously from the running goroutine.
func (r *Runner) Watch(fn func(Event)) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watchers == nil {
		r.watchers = make(map[int]func(Event))
	}
	id := r.nextID
	r.nextID++
	r.watchers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.watchers, id)
	}
}

func (r *Runner) emit(res *Result) {
	ev := Event{Key: res.Key, Dataset: res.Dataset, URL: res.URL, State: res.State}
	if res.Scene != nil {
		ev.Leaves = len(res.Scene.Tiles)
	}
	if res.Err != nil {
		ev.Error = res.Err.Error()
	}

	r.mu.Lock()
	fns := make([]func(Event), 0, len(r.watchers))
	for _, fn := range r.watchers {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
