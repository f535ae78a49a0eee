package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// testDataset is a small but structurally faithful slice of the
// territorial reference dataset.
func testDataset() []domain.Territory {
	return []domain.Territory{
		{Municipality: "Tarquinia", Province: "Viterbo", ProvinceCode: "VT", Region: "Lazio"},
		{Municipality: "Montalto di Castro", Province: "Viterbo", ProvinceCode: "VT", Region: "Lazio"},
		{Municipality: "Viterbo", Province: "Viterbo", ProvinceCode: "VT", Region: "Lazio"},
		{Municipality: "Roma", Province: "Roma", ProvinceCode: "RM", Region: "Lazio"},
		{Municipality: "Grosseto", Province: "Grosseto", ProvinceCode: "GR", Region: "Toscana"},
		{Municipality: "Firenze", Province: "Firenze", ProvinceCode: "FI", Region: "Toscana"},
	}
}

// fakeHierarchySource serves a fixed dataset, counting fetches. The
// optional gate lets a test hold a fetch in flight.
type fakeHierarchySource struct {
	entries []domain.Territory
	err     error
	fetches atomic.Int32
	gate    chan struct{}
}

func (f *fakeHierarchySource) Fetch(_ context.Context) ([]domain.Territory, error) {
	f.fetches.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

// loadedIndex builds a HierarchyIndex over the test dataset.
func loadedIndex(tb interface{ Fatalf(string, ...any) }) *HierarchyIndex {
	idx := NewHierarchyIndex(&fakeHierarchySource{entries: testDataset()}, nil)
	if err := idx.Load(context.Background()); err != nil {
		tb.Fatalf("loading test hierarchy: %v", err)
	}
	return idx
}

// fakeAuthAPI returns a canned session or error.
type fakeAuthAPI struct {
	session domain.Session
	err     error
	calls   int
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (domain.Session, error) {
	f.calls++
	if f.err != nil {
		return domain.Session{}, f.err
	}
	return f.session, nil
}

// fakeChatAPI records the last query and optionally blocks until released.
type fakeChatAPI struct {
	mu        sync.Mutex
	answer    domain.ChatAnswer
	err       error
	calls     int
	lastQuery domain.ChatQuery
	lastToken string
	started   chan struct{} // closed-ish: one send per Ask
	release   chan struct{}
}

func (f *fakeChatAPI) Ask(_ context.Context, token string, query domain.ChatQuery) (domain.ChatAnswer, error) {
	f.mu.Lock()
	f.calls++
	f.lastQuery = query
	f.lastToken = token
	started := f.started
	release := f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if f.err != nil {
		return domain.ChatAnswer{}, f.err
	}
	return f.answer, nil
}

func (f *fakeChatAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// uploadRecord captures one Upload invocation.
type uploadRecord struct {
	token string
	path  string
	scope domain.Scope
}

// fakeIngestionAPI succeeds by default; errs maps paths to failures.
type fakeIngestionAPI struct {
	mu      sync.Mutex
	errs    map[string]error
	uploads []uploadRecord
	files   []domain.RemoteFile
}

func (f *fakeIngestionAPI) Upload(_ context.Context, token, path string, scope domain.Scope) (domain.IngestReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, uploadRecord{token: token, path: path, scope: scope})
	if err := f.errs[path]; err != nil {
		return domain.IngestReceipt{}, err
	}
	return domain.IngestReceipt{Filename: path, Chunks: 1}, nil
}

func (f *fakeIngestionAPI) ListFiles(_ context.Context, _ string) ([]domain.RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files, nil
}

func (f *fakeIngestionAPI) recorded() []uploadRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uploadRecord(nil), f.uploads...)
}

// notifyRecorder subscribes to a broker and records received scopes.
type notifyRecorder struct {
	mu     sync.Mutex
	scopes []domain.Scope
}

func (r *notifyRecorder) record(scope domain.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = append(r.scopes, scope)
}

func (r *notifyRecorder) all() []domain.Scope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Scope(nil), r.scopes...)
}
