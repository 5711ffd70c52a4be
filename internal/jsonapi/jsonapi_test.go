package jsonapi_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/jsonapi"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	req := jsonapi.Request{
		Action:   "solve",
		Height:   9,
		Width:    9,
		MaxValue: 9,
		Givens:   "...",
	}
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	got, err := jsonapi.DecodeRequest(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeRequest error: %v", err)
	}
	if got.Action != req.Action || got.Height != req.Height || got.Width != req.Width ||
		got.MaxValue != req.MaxValue || got.Givens != req.Givens {
		t.Fatalf("DecodeRequest round trip = %+v, want %+v", got, req)
	}
}

func TestEncodeResponse(t *testing.T) {
	var buf bytes.Buffer
	resp := jsonapi.Response{OK: true, Complete: true, Solutions: 1}
	if err := jsonapi.EncodeResponse(&buf, resp); err != nil {
		t.Fatalf("EncodeResponse error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("EncodeResponse wrote nothing")
	}
}

func TestConvertSteps(t *testing.T) {
	decode := func(idx int) (int, int, int) {
		return 0, 0, idx
	}
	steps := []constraint.StepDesc{
		{
			Description: "test step",
			Eliminated:  []int{5},
			Placed:      &constraint.PlacedValue{Row: 1, Col: 2, Value: 3},
		},
	}
	out := jsonapi.ConvertSteps(steps, decode)
	if len(out) != 1 {
		t.Fatalf("ConvertSteps returned %d entries, want 1", len(out))
	}
	if out[0].Description != "test step" {
		t.Fatalf("ConvertSteps description = %q", out[0].Description)
	}
	if len(out[0].Eliminated) != 1 || out[0].Eliminated[0] != "r1c1=5" {
		t.Fatalf("ConvertSteps eliminated = %v, want [r1c1=5]", out[0].Eliminated)
	}
	if out[0].Placed == nil || out[0].Placed.Cell != "r2c3" || out[0].Placed.Value != 3 {
		t.Fatalf("ConvertSteps placed = %+v", out[0].Placed)
	}
}
