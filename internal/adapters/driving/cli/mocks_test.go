package cli

import (
	"context"
	"strings"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// fakeSessionService is a signed-in session stub.
type fakeSessionService struct {
	session  domain.Session
	loginErr error
}

func (f *fakeSessionService) Login(_ context.Context, username, _ string) (domain.Session, error) {
	if f.loginErr != nil {
		return domain.Session{}, f.loginErr
	}
	f.session = domain.Session{Token: "tok-" + username, Identity: username}
	return f.session, nil
}

func (f *fakeSessionService) Logout() error {
	f.session = domain.Session{}
	return nil
}

func (f *fakeSessionService) Current() domain.Session { return f.session }

func (f *fakeSessionService) Token() (string, error) {
	if f.session.IsZero() {
		return "", domain.ErrAuthRequired
	}
	return f.session.Token, nil
}

// fakeHierarchyService serves a tiny fixed dataset.
type fakeHierarchyService struct {
	loadErr error
}

func (f *fakeHierarchyService) Load(context.Context) error { return f.loadErr }

func (f *fakeHierarchyService) Regions() []string { return []string{"Lazio", "Toscana"} }

func (f *fakeHierarchyService) Provinces(region string) []string {
	if region == "Lazio" {
		return []string{"Roma", "Viterbo"}
	}
	if region == "Toscana" {
		return []string{"Grosseto"}
	}
	return nil
}

func (f *fakeHierarchyService) Municipalities(region, province string) []string {
	if region == "Lazio" && province == "Viterbo" {
		return []string{"Montalto di Castro", "Tarquinia"}
	}
	return nil
}

func (f *fakeHierarchyService) Validate(scope domain.Scope) error {
	if scope.Municipality != "" && f.Municipalities(scope.Region, scope.Province) == nil {
		return domain.ErrScopeInconsistent
	}
	return nil
}

func (f *fakeHierarchyService) FindMunicipality(name string) (domain.Territory, bool) {
	if strings.EqualFold(name, "Tarquinia") {
		return domain.Territory{
			Municipality: "Tarquinia",
			Province:     "Viterbo",
			Region:       "Lazio",
		}, true
	}
	return domain.Territory{}, false
}

// fakeScopeBroker keeps the canonical value without validation.
type fakeScopeBroker struct {
	scope     domain.Scope
	published []string
}

func (f *fakeScopeBroker) Publish(scope domain.Scope, sourceID string) error {
	f.scope = scope
	f.published = append(f.published, sourceID)
	return nil
}

func (f *fakeScopeBroker) Subscribe(string, driving.ScopeSubscriber) {}
func (f *fakeScopeBroker) Unsubscribe(string)                       {}
func (f *fakeScopeBroker) Current() domain.Scope                    { return f.scope }

// fakeScopeSelector satisfies the port; CLI commands never drive it.
type fakeScopeSelector struct {
	selection domain.Scope
}

func (f *fakeScopeSelector) SetRegion(region string) error {
	f.selection = domain.NewScope(region, "", "")
	return nil
}

func (f *fakeScopeSelector) SetProvince(province string) error {
	f.selection = domain.NewScope(f.selection.Region, province, "")
	return nil
}

func (f *fakeScopeSelector) SetMunicipality(municipality string) error {
	f.selection = domain.NewScope(f.selection.Region, f.selection.Province, municipality)
	return nil
}

func (f *fakeScopeSelector) Selection() domain.Scope       { return f.selection }
func (f *fakeScopeSelector) RegionOptions() []string       { return nil }
func (f *fakeScopeSelector) ProvinceOptions() []string     { return nil }
func (f *fakeScopeSelector) MunicipalityOptions() []string { return nil }

// fakeUploadService accepts everything and marks it succeeded on send.
type fakeUploadService struct {
	tasks   map[domain.Level][]domain.UploadTask
	sendErr error
}

func (f *fakeUploadService) Enqueue(bucket domain.Level, paths []string) (driving.EnqueueResult, error) {
	result := driving.EnqueueResult{Rejected: map[string]error{}}
	for _, path := range paths {
		if !domain.IsDocumentFile(path) {
			result.Rejected[path] = domain.ErrUnsupportedFile
			continue
		}
		task := domain.UploadTask{
			ID:          path,
			Path:        path,
			Name:        path[strings.LastIndex(path, "/")+1:],
			TargetScope: domain.NationalScope(),
			Status:      domain.UploadQueued,
		}
		if f.tasks == nil {
			f.tasks = map[domain.Level][]domain.UploadTask{}
		}
		f.tasks[bucket] = append(f.tasks[bucket], task)
		result.Accepted = append(result.Accepted, task)
	}
	return result, nil
}

func (f *fakeUploadService) Tasks(bucket domain.Level) []domain.UploadTask {
	return f.tasks[bucket]
}

func (f *fakeUploadService) Send(context.Context, string) error { return f.sendErr }

func (f *fakeUploadService) SendAll(_ context.Context, bucket domain.Level) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	for i := range f.tasks[bucket] {
		f.tasks[bucket][i].Status = domain.UploadSucceeded
	}
	return nil
}

func (f *fakeUploadService) Retry(context.Context, string) error { return nil }
func (f *fakeUploadService) Dismiss(string) error                { return nil }

// fakeChatService answers every question with a canned cited reply.
type fakeChatService struct {
	history []domain.ChatMessage
	scope   domain.Scope
	sendErr error
}

func (f *fakeChatService) Send(_ context.Context, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.history = append(f.history,
		domain.ChatMessage{Role: domain.RoleUser, Text: text},
		domain.ChatMessage{
			Role: domain.RoleAssistant,
			Text: "L'indice di edificabilità è 0,8 mc/mq.",
			Sources: []domain.SourceRef{
				{Filename: "nta_tarquinia.pdf", Page: 12, Level: "comunale"},
			},
		},
	)
	return nil
}

func (f *fakeChatService) History() []domain.ChatMessage { return f.history }
func (f *fakeChatService) AdoptScope(scope domain.Scope) { f.scope = scope }
func (f *fakeChatService) Scope() domain.Scope           { return f.scope }
func (f *fakeChatService) InFlight() bool                { return false }

// fakeIngestionAPI serves a fixed remote file list.
type fakeIngestionAPI struct {
	files []domain.RemoteFile
}

func (f *fakeIngestionAPI) Upload(_ context.Context, _ string, path string, _ domain.Scope) (domain.IngestReceipt, error) {
	return domain.IngestReceipt{Filename: path, Chunks: 1}, nil
}

func (f *fakeIngestionAPI) ListFiles(context.Context, string) ([]domain.RemoteFile, error) {
	return f.files, nil
}

// setupTestServices wires fake services into the package vars and returns
// a cleanup restoring the previous wiring.
func setupTestServices() func() {
	prevSession := sessionService
	prevHierarchy := hierarchyService
	prevBroker := scopeBroker
	prevSelector := scopeSelector
	prevUploads := uploadService
	prevChat := chatService
	prevIngestion := ingestionAPI

	SetServices(Services{
		Session:   &fakeSessionService{session: domain.Session{Token: "tok", Identity: "geometra"}},
		Hierarchy: &fakeHierarchyService{},
		Broker:    &fakeScopeBroker{},
		Selector:  &fakeScopeSelector{},
		Uploads:   &fakeUploadService{},
		Chat:      &fakeChatService{},
		Ingestion: &fakeIngestionAPI{},
	})

	return func() {
		sessionService = prevSession
		hierarchyService = prevHierarchy
		scopeBroker = prevBroker
		scopeSelector = prevSelector
		uploadService = prevUploads
		chatService = prevChat
		ingestionAPI = prevIngestion
	}
}
