// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// JSON has no literal for NaN or the infinities, so a Sample writes them
// as the strings below and reads them back.
const (
	jsonNaN    = "NaN"
	jsonPosInf = "+Inf"
	jsonNegInf = "-Inf"
)

type jsonSample struct {
	Cycle   json.RawMessage `json:"cycle"`
	Utility json.RawMessage `json:"utility"`
}

// MarshalJSON encodes finite values as numbers and non-finite values as
// "NaN", "+Inf" or "-Inf".
func (s Sample) MarshalJSON() ([]byte, error) {
	cycle, err := marshalFloat(s.Cycle)
	if err != nil {
		return nil, err
	}
	utility, err := marshalFloat(s.Utility)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonSample{Cycle: cycle, Utility: utility})
}

// UnmarshalJSON accepts the encoding written by MarshalJSON.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var raw jsonSample
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cycle, err := unmarshalFloat(raw.Cycle)
	if err != nil {
		return fmt.Errorf("cycle: %w", err)
	}
	utility, err := unmarshalFloat(raw.Utility)
	if err != nil {
		return fmt.Errorf("utility: %w", err)
	}
	s.Cycle, s.Utility = cycle, utility
	return nil
}

func marshalFloat(v float64) (json.RawMessage, error) {
	switch {
	case math.IsNaN(v):
		return json.Marshal(jsonNaN)
	case math.IsInf(v, 1):
		return json.Marshal(jsonPosInf)
	case math.IsInf(v, -1):
		return json.Marshal(jsonNegInf)
	}
	return json.Marshal(v)
}

func unmarshalFloat(data json.RawMessage) (float64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		switch s {
		case jsonNaN:
			return math.NaN(), nil
		case jsonPosInf:
			return math.Inf(1), nil
		case jsonNegInf:
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("unknown non-finite value %q", s)
	}
	var v float64
	err := json.Unmarshal(data, &v)
	return v, err
}
