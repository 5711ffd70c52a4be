// Package jsonapi implements the thin JSON request/response envelope
// of spec §6: envelope types plus a codec for a stdin/stdout transport
// (cmd/gridlogic does not use this package), built on the stdlib
// encoding/json rather than
// a third-party JSON library (see DESIGN.md: no part of this pack or
// the wider ecosystem earns its weight at this message volume/shape —
// one small struct encoded/decoded per CLI invocation, not a hot
// path). Full websocket/WASM transports are out of scope per spec.md's
// Non-goals.
package jsonapi

import (
	"encoding/json"
	"io"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/format"
)

// ConstraintSpec names one constraint plug-in and its options-string
// (internal/options) arguments, as they'd appear in an external puzzle
// file.
type ConstraintSpec struct {
	Kind    string `json:"kind"`
	Options string `json:"options"`
}

// Request is the decoded form of one external solve/analyze call.
type Request struct {
	Action        string           `json:"action"` // solve, random, logical, count, check, truecandidates, solvepath, step, estimate
	Height        int              `json:"height"`
	Width         int              `json:"width"`
	MaxValue      int              `json:"max_value"`
	BoxHeight     int              `json:"box_height,omitempty"`
	BoxWidth      int              `json:"box_width,omitempty"`
	Givens        string           `json:"givens,omitempty"`
	Candidates    string           `json:"candidates,omitempty"`
	Constraints   []ConstraintSpec `json:"constraints,omitempty"`
	MaxSolutions  int              `json:"max_solutions,omitempty"`
	Multithread   bool             `json:"multithread,omitempty"`
	Random        bool             `json:"random,omitempty"`
	DisabledLogic []string         `json:"disabled_logic,omitempty"`
}

// PlacedValue mirrors constraint.PlacedValue in external coordinates.
type PlacedValue struct {
	Cell  string `json:"cell"`
	Value int    `json:"value"`
}

// StepDesc mirrors constraint.StepDesc, rendering candidate indexes as
// human-readable "rNcN=V" strings instead of raw integers.
type StepDesc struct {
	Description string       `json:"description"`
	Eliminated  []string     `json:"eliminated,omitempty"`
	Placed      *PlacedValue `json:"placed,omitempty"`
}

// Response is the encoded form of one solve/analyze result.
type Response struct {
	OK         bool       `json:"ok"`
	Error      string     `json:"error,omitempty"`
	Givens     string     `json:"givens,omitempty"`
	Candidates string     `json:"candidates,omitempty"`
	Solutions  int        `json:"solutions,omitempty"`
	Complete   bool       `json:"complete,omitempty"`
	Steps      []StepDesc `json:"steps,omitempty"`
}

// DecodeRequest reads one JSON-encoded Request from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// EncodeResponse writes resp as JSON to w.
func EncodeResponse(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// ConvertSteps renders engine StepDescs into their external JSON form,
// decoding candidate indexes back to (row,col,value) via decode.
func ConvertSteps(steps []constraint.StepDesc, decode func(idx int) (r, c, v int)) []StepDesc {
	out := make([]StepDesc, len(steps))
	for i, s := range steps {
		js := StepDesc{Description: s.Description}
		for _, idx := range s.Eliminated {
			r, c, v := decode(idx)
			js.Eliminated = append(js.Eliminated, format.FormatCell(r, c)+"="+string(format.RuneForValue(v)))
		}
		if s.Placed != nil {
			js.Placed = &PlacedValue{
				Cell:  format.FormatCell(s.Placed.Row, s.Placed.Col),
				Value: s.Placed.Value,
			}
		}
		out[i] = js
	}
	return out
}
