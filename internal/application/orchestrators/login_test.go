package orchestrators

import (
	"context"
	"errors"
	"testing"

	"portal/internal/application/forms"
	"portal/internal/domain/role"
	"portal/internal/domain/session"
)

// mockAuthAPI records calls and returns scripted results.
type mockAuthAPI struct {
	loginRecord  session.Record
	loginErr     error
	signupErr    error
	loginCalls   int
	signupCalls  int
	lastEndpoint string
	lastPayload  map[string]string
	lastEnvelope string
}

func (m *mockAuthAPI) Login(ctx context.Context, endpoint string, payload map[string]string, envelopeKey string) (session.Record, error) {
	m.loginCalls++
	m.lastEndpoint = endpoint
	m.lastPayload = payload
	m.lastEnvelope = envelopeKey
	return m.loginRecord, m.loginErr
}

func (m *mockAuthAPI) Signup(ctx context.Context, endpoint string, payload map[string]string) error {
	m.signupCalls++
	m.lastEndpoint = endpoint
	m.lastPayload = payload
	return m.signupErr
}

// mockRecords is an in-memory RecordsForLogin/RecordsForLogout.
type mockRecords struct {
	saved    map[string]session.Record // keyed by browserID + ":" + storage key
	saveErr  error
	cleared  []string
	clearErr error
}

func newMockRecords() *mockRecords {
	return &mockRecords{saved: make(map[string]session.Record)}
}

func (m *mockRecords) Save(ctx context.Context, browserID string, ro role.Role, rec session.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[browserID+":"+ro.StorageKey] = rec
	return nil
}

func (m *mockRecords) Clear(ctx context.Context, browserID string, ro role.Role) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = append(m.cleared, browserID+":"+ro.StorageKey)
	return nil
}

func studentLoginDraft() forms.Draft {
	return forms.Draft{"registration_number": "21BCE100", "password": "secret123"}
}

func TestExecuteLogin_SavesRecord(t *testing.T) {
	api := &mockAuthAPI{loginRecord: session.Record{"registration_number": "21BCE100", "name": "Ann"}}
	records := newMockRecords()

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Role:      role.Student,
		BrowserID: "b1",
		Draft:     studentLoginDraft(),
	}, LoginDeps{API: api, Records: records})
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}

	if api.lastEndpoint != role.Student.LoginEndpoint {
		t.Errorf("endpoint = %q", api.lastEndpoint)
	}
	if api.lastEnvelope != role.Student.EnvelopeKey {
		t.Errorf("envelope = %q", api.lastEnvelope)
	}
	if result.Record.Field("name") != "Ann" {
		t.Errorf("record name = %q", result.Record.Field("name"))
	}
	if _, ok := records.saved["b1:"+role.Student.StorageKey]; !ok {
		t.Error("record was not saved under the role's storage key")
	}
}

func TestExecuteLogin_UpstreamFailureStoresNothing(t *testing.T) {
	api := &mockAuthAPI{loginErr: errors.New("Invalid credentials")}
	records := newMockRecords()

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Role:      role.Student,
		BrowserID: "b1",
		Draft:     studentLoginDraft(),
	}, LoginDeps{API: api, Records: records})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(records.saved) != 0 {
		t.Error("failed login must not store a session record")
	}
}

func TestExecuteLogin_EmptyFieldsSkipNetwork(t *testing.T) {
	api := &mockAuthAPI{}
	records := newMockRecords()

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Role:      role.Student,
		BrowserID: "b1",
		Draft:     forms.Draft{"registration_number": "", "password": ""},
	}, LoginDeps{API: api, Records: records})
	if err != forms.ErrMissingFields {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}
	if api.loginCalls != 0 {
		t.Error("incomplete form must not reach the upstream")
	}
}

func TestExecuteLogin_FacultyUsesFacultyEndpoint(t *testing.T) {
	api := &mockAuthAPI{loginRecord: session.Record{"faculty_id": "F42"}}
	records := newMockRecords()

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Role:      role.Faculty,
		BrowserID: "b1",
		Draft:     forms.Draft{"facultyId": "F42", "password": "secret123"},
	}, LoginDeps{API: api, Records: records})
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if api.lastEndpoint != role.Faculty.LoginEndpoint {
		t.Errorf("endpoint = %q", api.lastEndpoint)
	}
	if _, ok := records.saved["b1:"+role.Faculty.StorageKey]; !ok {
		t.Error("record was not saved under facultyData")
	}
}
