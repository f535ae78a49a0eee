package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	history []domain.ChatMessage
	scope   domain.Scope
	answer  string
	sources []domain.SourceRef
	sendErr error

	lastSent string
	adopted  []domain.Scope
}

func (m *mockChatService) Send(_ context.Context, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.lastSent = text
	now := time.Now()
	m.history = append(m.history,
		domain.ChatMessage{Role: domain.RoleUser, Text: text, CreatedAt: now},
		domain.ChatMessage{Role: domain.RoleAssistant, Text: m.answer, Sources: m.sources, CreatedAt: now},
	)
	return nil
}

func (m *mockChatService) History() []domain.ChatMessage {
	return append([]domain.ChatMessage(nil), m.history...)
}

func (m *mockChatService) AdoptScope(scope domain.Scope) {
	m.scope = scope
	m.adopted = append(m.adopted, scope)
}

func (m *mockChatService) Scope() domain.Scope {
	return m.scope
}

func (m *mockChatService) InFlight() bool {
	return false
}

// mockHierarchyService is a mock implementation of driving.HierarchyService
// over a tiny fixed dataset.
type mockHierarchyService struct {
	loadErr   error
	loadCalls int
}

var mockDataset = []domain.Territory{
	{Municipality: "Tarquinia", Province: "Viterbo", Region: "Lazio"},
	{Municipality: "Viterbo", Province: "Viterbo", Region: "Lazio"},
	{Municipality: "Grosseto", Province: "Grosseto", Region: "Toscana"},
}

func (m *mockHierarchyService) Load(_ context.Context) error {
	m.loadCalls++
	return m.loadErr
}

func (m *mockHierarchyService) Regions() []string {
	return []string{"Lazio", "Toscana"}
}

func (m *mockHierarchyService) Provinces(region string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range mockDataset {
		if t.Region == region && !seen[t.Province] {
			seen[t.Province] = true
			out = append(out, t.Province)
		}
	}
	return out
}

func (m *mockHierarchyService) Municipalities(region, province string) []string {
	var out []string
	for _, t := range mockDataset {
		if t.Region == region && t.Province == province {
			out = append(out, t.Municipality)
		}
	}
	return out
}

func (m *mockHierarchyService) Validate(scope domain.Scope) error {
	if scope.IsNational() {
		return nil
	}
	for _, t := range mockDataset {
		regionOK := scope.Region == t.Region
		provinceOK := scope.Province == "" || scope.Province == t.Province
		comuneOK := scope.Municipality == "" || scope.Municipality == t.Municipality
		if regionOK && provinceOK && comuneOK {
			return nil
		}
	}
	return domain.ErrScopeInconsistent
}

func (m *mockHierarchyService) FindMunicipality(name string) (domain.Territory, bool) {
	for _, t := range mockDataset {
		if strings.EqualFold(t.Municipality, name) {
			return t, true
		}
	}
	return domain.Territory{}, false
}
