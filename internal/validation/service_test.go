// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

// fakeRegistry returns one canned answer for every identifier kind and
// records what it was asked.
type fakeRegistry struct {
	res    types.ValidationResult
	md     *types.SourceMetadata
	calls  int
	lastID string
}

func (f *fakeRegistry) CheckDOI(_ context.Context, doi string) (types.ValidationResult, *types.SourceMetadata) {
	f.calls++
	f.lastID = doi
	return f.res, f.md
}

func (f *fakeRegistry) CheckISBN(_ context.Context, isbn string) (types.ValidationResult, *types.SourceMetadata) {
	f.calls++
	f.lastID = isbn
	return f.res, f.md
}

func (f *fakeRegistry) CheckArxiv(_ context.Context, id string) (types.ValidationResult, *types.SourceMetadata) {
	f.calls++
	f.lastID = id
	return f.res, f.md
}

type fakeConflicts struct {
	res       types.ValidationResult
	conflicts []types.ConflictingInterpretation
	err       error
	calls     int
}

func (f *fakeConflicts) CheckForConflicts(_ context.Context, _, _, _ string) (types.ValidationResult, []types.ConflictingInterpretation, error) {
	f.calls++
	return f.res, f.conflicts, f.err
}

func foundResult() types.ValidationResult {
	return types.ValidationResult{
		Status:  types.StatusValid,
		Layer:   types.LayerExistence,
		Message: "found in crossref",
	}
}

func notFoundResult() types.ValidationResult {
	return types.ValidationResult{
		Status:  types.StatusInvalid,
		Layer:   types.LayerExistence,
		Message: "not found in crossref",
	}
}

func journalClaim(id, doi string) types.CitationClaim {
	return types.CitationClaim{
		SourceID:   id,
		DOI:        doi,
		Authors:    []string{"Vaswani, Ashish"},
		Year:       2017,
		SourceType: types.SourceJournal,
		Data: map[string]string{
			"title":   "Attention Is All You Need",
			"authors": "Vaswani, Ashish",
			"journal": "NeurIPS",
			"year":    "2017",
		},
	}
}

func matchingMetadata() *types.SourceMetadata {
	return &types.SourceMetadata{
		Title:   "Attention Is All You Need",
		Authors: []string{"Ashish Vaswani"},
		Year:    2017,
	}
}

func TestValidateCitationValidDOI(t *testing.T) {
	reg := &fakeRegistry{res: foundResult(), md: matchingMetadata()}
	svc := NewService(reg, nil, types.ValidationConfig{EnableAPIChecks: true})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "https://doi.org/10.1234/x"), "doc-1")

	if res.OverallStatus != types.StatusValid {
		t.Errorf("OverallStatus = %q: %s", res.OverallStatus, res.Summary)
	}
	if res.BlocksExport {
		t.Error("clean citation must not block export")
	}
	if res.ExistenceResult == nil || res.ExistenceResult.Status != types.StatusValid {
		t.Errorf("ExistenceResult = %+v", res.ExistenceResult)
	}
	if res.Metadata == nil || res.Metadata.Year != 2017 {
		t.Errorf("Metadata = %+v", res.Metadata)
	}
	if reg.lastID != "10.1234/x" {
		t.Errorf("registry asked for %q, want the normalized DOI", reg.lastID)
	}
	if res.Summary != "all checks passed" {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestValidateCitationNotFoundBlocks(t *testing.T) {
	reg := &fakeRegistry{res: notFoundResult()}
	svc := NewService(reg, nil, types.ValidationConfig{EnableAPIChecks: true})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "10.1234/ghost"), "doc-1")

	if res.OverallStatus != types.StatusInvalid || !res.BlocksExport {
		t.Fatalf("status/blocks = %q/%v, want invalid/true", res.OverallStatus, res.BlocksExport)
	}
	if len(res.RedFlags) != 1 || res.RedFlags[0].Type != types.FlagNonexistentSource {
		t.Errorf("RedFlags = %+v", res.RedFlags)
	}
	if !strings.HasPrefix(res.Summary, "validation failed:") {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestValidateCitationBadChecksumShortCircuits(t *testing.T) {
	reg := &fakeRegistry{res: foundResult(), md: matchingMetadata()}
	conflicts := &fakeConflicts{}
	svc := NewService(reg, conflicts, types.ValidationConfig{EnableAPIChecks: true})

	claim := journalClaim("s1", "")
	claim.ISBN = "9780306406158" // wrong check digit

	res := svc.ValidateCitation(context.Background(), claim, "doc-1")

	if res.OverallStatus != types.StatusInvalid || !res.BlocksExport {
		t.Fatalf("status/blocks = %q/%v", res.OverallStatus, res.BlocksExport)
	}
	if reg.calls != 0 {
		t.Errorf("registry called %d times after format failure", reg.calls)
	}
	if res.ExistenceResult != nil {
		t.Errorf("ExistenceResult = %+v, want nil after format failure", res.ExistenceResult)
	}
	// Local layers still run: the store check needs no trusted identifier.
	if conflicts.calls != 1 {
		t.Errorf("conflict checker called %d times, want 1", conflicts.calls)
	}
}

func TestValidateCitationOfflineSkipsRegistry(t *testing.T) {
	reg := &fakeRegistry{res: foundResult(), md: matchingMetadata()}
	svc := NewService(reg, nil, types.ValidationConfig{EnableAPIChecks: false})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "10.1234/x"), "doc-1")

	if reg.calls != 0 {
		t.Errorf("registry called %d times with API checks disabled", reg.calls)
	}
	if res.ExistenceResult != nil {
		t.Errorf("ExistenceResult = %+v, want nil", res.ExistenceResult)
	}
	if res.OverallStatus != types.StatusValid {
		t.Errorf("OverallStatus = %q: %s", res.OverallStatus, res.Summary)
	}
}

func TestValidateCitationYearMismatchRequestsVerification(t *testing.T) {
	md := matchingMetadata()
	md.Year = 2019 // off by two: worth a human look, not a flag
	reg := &fakeRegistry{res: foundResult(), md: md}
	svc := NewService(reg, nil, types.ValidationConfig{EnableAPIChecks: true})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "10.1234/x"), "doc-1")

	if len(res.VerificationRequests) != 1 {
		t.Fatalf("VerificationRequests = %+v", res.VerificationRequests)
	}
	if res.VerificationRequests[0].CheckType != types.CheckYearMatch {
		t.Errorf("CheckType = %q", res.VerificationRequests[0].CheckType)
	}
	if len(res.RedFlags) != 0 {
		t.Errorf("RedFlags = %+v, small year gap must not flag", res.RedFlags)
	}
	// Every result is VALID and no flag exists: a pending request has
	// no severity and must not demote the verdict.
	if res.OverallStatus != types.StatusValid {
		t.Errorf("OverallStatus = %q: %s", res.OverallStatus, res.Summary)
	}
	if res.BlocksExport {
		t.Error("pending request must not block export")
	}
	if res.Summary != "all checks passed" {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestValidateCitationAuthorMismatch(t *testing.T) {
	md := matchingMetadata()
	md.Authors = []string{"Jane Smith"}
	reg := &fakeRegistry{res: foundResult(), md: md}
	svc := NewService(reg, nil, types.ValidationConfig{EnableAPIChecks: true})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "10.1234/x"), "doc-1")

	if res.OverallStatus != types.StatusInvalid {
		t.Fatalf("OverallStatus = %q: %s", res.OverallStatus, res.Summary)
	}
	if len(res.RedFlags) != 1 || res.RedFlags[0].Type != types.FlagAuthorMismatch {
		t.Errorf("RedFlags = %+v", res.RedFlags)
	}
	var gotRequest bool
	for _, req := range res.VerificationRequests {
		if req.CheckType == types.CheckAuthorMatch {
			gotRequest = true
		}
	}
	if !gotRequest {
		t.Error("author mismatch must also enqueue a verification request")
	}
}

func TestValidateCitationConflictsWarn(t *testing.T) {
	conflicts := &fakeConflicts{
		res: types.ValidationResult{
			Status:  types.StatusWarning,
			Layer:   types.LayerCrossProject,
			Message: "2 other document(s) cite this identifier",
		},
		conflicts: []types.ConflictingInterpretation{
			{DocumentID: "doc-a"}, {DocumentID: "doc-b"},
		},
	}
	svc := NewService(nil, conflicts, types.ValidationConfig{})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "10.1234/x"), "doc-1")

	if res.CrossProjectResult == nil || res.CrossProjectResult.Status != types.StatusWarning {
		t.Fatalf("CrossProjectResult = %+v", res.CrossProjectResult)
	}
	if len(res.Conflicts) != 2 {
		t.Errorf("Conflicts = %+v", res.Conflicts)
	}
	if res.OverallStatus != types.StatusWarning || res.BlocksExport {
		t.Errorf("status/blocks = %q/%v, conflicts warn but never block", res.OverallStatus, res.BlocksExport)
	}
}

func TestValidateCitationStoreFailureDegrades(t *testing.T) {
	conflicts := &fakeConflicts{err: fmt.Errorf("db locked")}
	svc := NewService(nil, conflicts, types.ValidationConfig{})

	res := svc.ValidateCitation(context.Background(), journalClaim("s1", "10.1234/x"), "doc-1")

	if res.CrossProjectResult == nil || res.CrossProjectResult.Status != types.StatusWarning {
		t.Fatalf("CrossProjectResult = %+v", res.CrossProjectResult)
	}
	if !strings.Contains(res.CrossProjectResult.Message, "db locked") {
		t.Errorf("Message = %q", res.CrossProjectResult.Message)
	}
	if res.OverallStatus != types.StatusWarning {
		t.Errorf("OverallStatus = %q, store failure must degrade, not block", res.OverallStatus)
	}
}

func TestValidateCitationClaimTextRequestsVerification(t *testing.T) {
	reg := &fakeRegistry{res: foundResult(), md: matchingMetadata()}
	svc := NewService(reg, nil, types.ValidationConfig{EnableAPIChecks: true})

	claim := journalClaim("s1", "10.1234/x")
	claim.Data["claim_text"] = "transformers outperform recurrent models"
	claim.Data["claim_id"] = "claim-3"

	res := svc.ValidateCitation(context.Background(), claim, "doc-1")

	if len(res.VerificationRequests) != 1 {
		t.Fatalf("VerificationRequests = %+v", res.VerificationRequests)
	}
	req := res.VerificationRequests[0]
	if req.CheckType != types.CheckSourceSupportsClaim || req.ClaimID != "claim-3" {
		t.Errorf("request = %+v", req)
	}
}

func TestValidateCitationNoMetadataSkipsContentChecks(t *testing.T) {
	// Registry disabled: layer 2 retrieves nothing, so layer 3 has no
	// registered record to question and must stay silent.
	svc := NewService(nil, nil, types.ValidationConfig{})

	claim := journalClaim("s1", "10.1234/x")
	claim.Data["claim_text"] = "transformers outperform recurrent models"

	res := svc.ValidateCitation(context.Background(), claim, "doc-1")

	if len(res.VerificationRequests) != 0 {
		t.Errorf("VerificationRequests = %+v, want none without metadata", res.VerificationRequests)
	}
	if res.OverallStatus != types.StatusValid {
		t.Errorf("OverallStatus = %q: %s", res.OverallStatus, res.Summary)
	}
}

func TestValidateCitationNoIdentifierSkipsLayers(t *testing.T) {
	reg := &fakeRegistry{res: foundResult()}
	conflicts := &fakeConflicts{}
	svc := NewService(reg, conflicts, types.ValidationConfig{EnableAPIChecks: true})

	claim := journalClaim("s1", "")
	res := svc.ValidateCitation(context.Background(), claim, "doc-1")

	if reg.calls != 0 || conflicts.calls != 0 {
		t.Errorf("registry/conflicts called %d/%d times without identifiers", reg.calls, conflicts.calls)
	}
	if res.ExistenceResult != nil || res.CrossProjectResult != nil {
		t.Error("identifier-free claim must skip layers 2 and 4")
	}
	if res.OverallStatus != types.StatusValid {
		t.Errorf("OverallStatus = %q: %s", res.OverallStatus, res.Summary)
	}
}
