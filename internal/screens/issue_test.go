package screens

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jask/petrus/internal/credential"
	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/identity"
)

type fakeEditors struct {
	names   []string
	used    string
	path    string
	content map[string]any
}

func (f *fakeEditors) Available() []string { return f.names }

func (f *fakeEditors) Edit(_ context.Context, editor, path string) error {
	f.used = editor
	f.path = path
	data, err := json.Marshal(f.content)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Seeded templates list as driver_license then university_degree.
const universityRow = "2"

type parties3 struct {
	issuer, holder, verifier          repository.DID
	issuerDoc, holderDoc, verifierDoc identity.Document
}

func (h *harness) parties(t *testing.T) parties3 {
	t.Helper()
	var p parties3
	p.issuer, p.issuerDoc = h.did(t, 1, "University")
	p.holder, p.holderDoc = h.did(t, 2, "Alice")
	p.verifier, p.verifierDoc = h.did(t, 3, "Employer")
	return p
}

func (p parties3) rows() []repository.DID { return []repository.DID{p.issuer, p.holder, p.verifier} }

func TestCreateVC(t *testing.T) {
	h := newHarness(t,
		"1", "3", // issuer, holder
		"holder", "2", // pick the holder again
		"", // confirm
		universityRow, "n",
		"", // pause
	)
	p := h.parties(t)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), p.issuer.DID).Return(p.issuerDoc, nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), p.holder.DID).Return(p.holderDoc, nil)
	var token string
	h.store.EXPECT().SaveVC(gomock.Any(), gomock.Any(), int64(1), int64(2), "UniversityDegree", false).
		DoAndReturn(func(_ context.Context, tok string, _, _ int64, _ string, _ bool) (*repository.VC, error) {
			token = tok
			return &repository.VC{ID: 7, Token: tok}, nil
		})

	got, err := h.run(t, fsm.CreateNormalVCWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Success, got)
	require.Zero(t, h.term.Remaining())
	require.Contains(t, h.term.Output(), "VC Created")

	decoded, err := h.engine.Validate(context.Background(), token, p.issuerDoc)
	require.NoError(t, err)
	require.Equal(t, p.holder.DID, decoded.Subject["id"])
	require.Equal(t, "Example University", decoded.Subject["university"])
	require.True(t, decoded.Claims.VC.NonTransferable)
}

func TestCreateVCConfirmLoop(t *testing.T) {
	h := newHarness(t, "1", "2", "bakc", "back")
	p := h.parties(t)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)

	got, err := h.run(t, fsm.CreateNormalVCWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Cancel, got)
	require.Contains(t, h.term.Output(), "Did you mean 'back'?")
	require.Zero(t, h.term.Remaining())
}

func TestCreateVCWithoutDIDs(t *testing.T) {
	h := newHarness(t, "")
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(nil, nil)

	got, err := h.run(t, fsm.CreateNormalVCWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Cancel, got)
	require.Contains(t, h.term.Output(), "No DIDs found")
}

func TestCreateVCEditedTemplate(t *testing.T) {
	h := newHarness(t, "1", "2", "", universityRow, "y", "2", "")
	h.editors.names = []string{"nano", "vim"}
	h.editors.content = map[string]any{"name": "Bob", "degree": "PhD"}
	p := h.parties(t)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, did string) (identity.Document, error) {
			return identity.FromJWKDID(did)
		}).Times(2)
	var token string
	h.store.EXPECT().SaveVC(gomock.Any(), gomock.Any(), int64(1), int64(2), "UniversityDegree", false).
		DoAndReturn(func(_ context.Context, tok string, _, _ int64, _ string, _ bool) (*repository.VC, error) {
			token = tok
			return &repository.VC{ID: 1, Token: tok}, nil
		})

	got, err := h.run(t, fsm.CreateNormalVCWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Success, got)
	require.Equal(t, "vim", h.editors.used)
	require.NoFileExists(t, h.editors.path)

	decoded, err := h.engine.Validate(context.Background(), token, p.issuerDoc)
	require.NoError(t, err)
	require.Equal(t, "Bob", decoded.Subject["name"])
	require.NotContains(t, decoded.Subject, "university")
}

func TestCreateVCNoEditor(t *testing.T) {
	h := newHarness(t, "1", "2", "", universityRow, "y", "")
	p := h.parties(t)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(p.issuerDoc, nil).Times(2)

	got, err := h.run(t, fsm.CreateNormalVCWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Cancel, got)
	require.Contains(t, h.term.Output(), "no editor found")
}

func TestCreateSDVC(t *testing.T) {
	// claims sort as degree, graduationYear, name, university
	h := newHarness(t, "1", "2", "", universityRow, "n", "3", "1", "1", "ok", "")
	p := h.parties(t)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), p.issuer.DID).Return(p.issuerDoc, nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), p.holder.DID).Return(p.holderDoc, nil)
	var token string
	h.store.EXPECT().SaveVC(gomock.Any(), gomock.Any(), int64(1), int64(2), "UniversityDegree", true).
		DoAndReturn(func(_ context.Context, tok string, _, _ int64, _ string, _ bool) (*repository.VC, error) {
			token = tok
			return &repository.VC{ID: 1, Token: tok}, nil
		})

	got, err := h.run(t, fsm.CreateSDVCWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Success, got)
	require.Contains(t, h.term.Output(), "Disclosures:")

	sd, err := credential.ParseSD(token)
	require.NoError(t, err)
	require.Equal(t, []string{"name"}, sd.Names())

	withheld, err := h.engine.Validate(context.Background(), sd.Present(nil).Token(), p.issuerDoc)
	require.NoError(t, err)
	require.NotContains(t, withheld.Subject, "name")
	require.Equal(t, "Example University", withheld.Subject["university"])
}

func issueSD(t *testing.T, h *harness, p parties3) repository.VC {
	t.Helper()
	sd, err := h.engine.IssueSD(context.Background(), credential.IssueRequest{
		Issuer:    p.issuerDoc,
		HolderDID: p.holder.DID,
		Type:      "UniversityDegree",
		Subject:   map[string]any{"name": "Alice", "degree": "BSc", "university": "Example"},
	}, []string{"degree", "name"})
	require.NoError(t, err)
	return repository.VC{ID: 1, Token: sd.Token(), Type: "UniversityDegree", SD: true, Issuer: p.issuer, Holder: p.holder, CreatedAt: time.Now()}
}

func TestCreateVP(t *testing.T) {
	h := newHarness(t,
		"3", "back", "3", "", // verifier, reselected once
		"1", "", // vc
		"2", "ok", // reveal name only
		"90", "5", // expiry
		"",
	)
	p := h.parties(t)
	vc := issueSD(t, h, p)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.store.EXPECT().StoredVCs(gomock.Any()).Return([]repository.VC{vc}, nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), p.holder.DID).Return(p.holderDoc, nil)

	got, err := h.run(t, fsm.CreateVPWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Success, got)
	require.Zero(t, h.term.Remaining())

	out := h.term.Output()
	require.Contains(t, out, "Verifier and Holder have agreed upon 5 minutes expiration")
	require.Contains(t, out, "challenge-1")
	require.Contains(t, out, "Holder is signing the VP...")
	for _, step := range []credential.Step{credential.StepHolder, credential.StepChallenge, credential.StepIssuers, credential.StepCredentials} {
		require.Contains(t, out, step.String()+"...")
	}
	require.NotContains(t, out, "Failed!")
	require.Contains(t, out, `"name": "Alice"`)
	require.NotContains(t, out, `"degree": "BSc"`)
}

func TestCreateVPHolderNotResolvable(t *testing.T) {
	h := newHarness(t, "3", "", "1", "", "")
	p := h.parties(t)
	vc := issueSD(t, h, p)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.store.EXPECT().StoredVCs(gomock.Any()).Return([]repository.VC{vc}, nil)
	h.resolver.EXPECT().Resolve(gomock.Any(), p.holder.DID).Return(identity.Document{}, context.DeadlineExceeded)

	got, err := h.run(t, fsm.CreateVPWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Cancel, got)
	require.Contains(t, h.term.Output(), "deadline exceeded")
}

func TestCreateVPCancel(t *testing.T) {
	h := newHarness(t, "3", "cancel")
	p := h.parties(t)
	vc := issueSD(t, h, p)
	h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
	h.store.EXPECT().StoredVCs(gomock.Any()).Return([]repository.VC{vc}, nil)

	got, err := h.run(t, fsm.CreateVPWorkflow)
	require.NoError(t, err)
	require.Equal(t, fsm.Cancel, got)
}

func TestVerifyVC(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		wantOK bool
	}{
		{"right issuer", "1", true},
		{"wrong issuer", "3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "1", tt.row, "")
			p := h.parties(t)
			vc := issueSD(t, h, p)
			docs := map[string]identity.Document{p.issuer.DID: p.issuerDoc, p.verifier.DID: p.verifierDoc}
			h.store.EXPECT().StoredVCs(gomock.Any()).Return([]repository.VC{vc}, nil)
			h.store.EXPECT().StoredDIDs(gomock.Any()).Return(p.rows(), nil)
			h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, did string) (identity.Document, error) { return docs[did], nil })

			got, err := h.run(t, fsm.VerifyVCWorkflow)
			require.NoError(t, err)
			require.Equal(t, fsm.Success, got)
			if tt.wantOK {
				require.Contains(t, h.term.Output(), "VC verified successfully:")
				require.Contains(t, h.term.Output(), `"degree": "BSc"`)
			} else {
				require.Contains(t, h.term.Output(), "VC verification failed against Employer")
			}
		})
	}
}
