package client

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"gend/internal/engine"
	"gend/pkg/types"
)

func strptr(s string) *string { return &s }

func newTestService(t *testing.T, models []types.Model) *Service {
	t.Helper()
	h := newTestEngine(t, engine.Config{})
	return NewService(h, models, nil)
}

func TestCallFromWireCanonical(t *testing.T) {
	call, err := callFromWire(types.GenerateRequest{
		Prompts: []types.PromptSpec{
			{Text: strptr("hello world")},
			{TokenIDs: []int{0, 2, 1}},
		},
	})
	if err != nil {
		t.Fatalf("callFromWire: %v", err)
	}
	want := []types.Prompt{
		types.TextPrompt("hello world"),
		types.TokensPrompt{0, 2, 1},
	}
	if !reflect.DeepEqual(call.Prompts, want) {
		t.Fatalf("prompts = %#v, want %#v", call.Prompts, want)
	}
}

func TestCallFromWireRejectsBadSpec(t *testing.T) {
	cases := []types.PromptSpec{
		{},                                              // neither variant
		{Text: strptr("x"), TokenIDs: []int{1}},         // both variants
	}
	for i, spec := range cases {
		_, err := callFromWire(types.GenerateRequest{Prompts: []types.PromptSpec{spec}})
		if err == nil || !IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCallFromWireLegacyTokenIDs(t *testing.T) {
	// Nested form: one prompt per inner list.
	call, err := callFromWire(types.GenerateRequest{
		PromptTokenIDs: json.RawMessage(`[[0],[0,1],[0,2,1]]`),
	})
	if err != nil {
		t.Fatalf("callFromWire nested: %v", err)
	}
	if want := [][]int{{0}, {0, 1}, {0, 2, 1}}; !reflect.DeepEqual(call.PromptTokenIDs, want) {
		t.Fatalf("nested ids = %v, want %v", call.PromptTokenIDs, want)
	}

	// Flat form: a single prompt.
	call, err = callFromWire(types.GenerateRequest{
		PromptTokenIDs: json.RawMessage(`[0,3,1,2]`),
	})
	if err != nil {
		t.Fatalf("callFromWire flat: %v", err)
	}
	if want := [][]int{{0, 3, 1, 2}}; !reflect.DeepEqual(call.PromptTokenIDs, want) {
		t.Fatalf("flat ids = %v, want %v", call.PromptTokenIDs, want)
	}

	// Garbage is rejected before normalization.
	_, err = callFromWire(types.GenerateRequest{
		PromptTokenIDs: json.RawMessage(`"nope"`),
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGenerateSurfacesWarnings(t *testing.T) {
	svc := newTestService(t, nil)
	resp, err := svc.Generate(context.Background(), types.GenerateRequest{
		Prompt: "Hello, my name is",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Field != "prompt" {
		t.Fatalf("warnings = %v, want one 'prompt' deprecation warning", resp.Warnings)
	}
}

func TestServiceGenerateCanonicalNoWarnings(t *testing.T) {
	svc := newTestService(t, nil)
	resp, err := svc.Generate(context.Background(), types.GenerateRequest{
		Prompts: []types.PromptSpec{{Text: strptr("The capital of France is")}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(resp.Warnings) != 0 {
		t.Fatalf("unexpected warnings for canonical request: %v", resp.Warnings)
	}
	if len(resp.Results) != 1 || len(resp.Results[0].Outputs) != 1 {
		t.Fatalf("unexpected result shape: %+v", resp.Results)
	}
}

func TestServiceGenerateFeedsProcessSink(t *testing.T) {
	h := newTestEngine(t, engine.Config{})
	sink := NewMemorySink()
	svc := NewService(h, nil, sink)
	if _, err := svc.Generate(context.Background(), types.GenerateRequest{
		PromptTokenIDs: json.RawMessage(`[[0,1]]`),
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Field != "prompt_token_ids" {
		t.Fatalf("process sink diagnostics = %v", diags)
	}
}

func TestServiceListModelsCopies(t *testing.T) {
	models := []types.Model{{ID: "a"}, {ID: "b"}}
	svc := newTestService(t, models)
	got := svc.ListModels()
	if !reflect.DeepEqual(got, models) {
		t.Fatalf("ListModels = %v, want %v", got, models)
	}
	got[0].ID = "mutated"
	if svc.ListModels()[0].ID != "a" {
		t.Fatalf("ListModels exposed internal slice")
	}
}

func TestServiceStatusAndReady(t *testing.T) {
	h := newTestEngine(t, engine.Config{})
	svc := NewService(h, nil, nil)
	if !svc.Ready() {
		t.Fatalf("expected ready service")
	}
	st := svc.Status()
	if st.State != "ready" {
		t.Fatalf("status state = %q", st.State)
	}
	h.Teardown()
	if svc.Ready() {
		t.Fatalf("service ready after teardown")
	}
}
