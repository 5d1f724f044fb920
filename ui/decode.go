package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/domain/core"
)

// resultRequest is the wire envelope for a single analysis result: the
// variant tag plus the tag-shaped payload.
type resultRequest struct {
	Tag    apa.VariantTag  `json:"tag"`
	Result json.RawMessage `json:"result"`
}

// DecodeRequest reads one tagged analysis result from a request body.
func DecodeRequest(r io.Reader) (apa.AnalysisResult, error) {
	var req resultRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return decodeResult(req)
}

// DecodeBatchRequest reads a list of tagged analysis results.
func DecodeBatchRequest(r io.Reader) ([]apa.AnalysisResult, error) {
	var req struct {
		Results []resultRequest `json:"results"`
	}
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if len(req.Results) == 0 {
		return nil, fmt.Errorf("decode request: empty results list")
	}

	results := make([]apa.AnalysisResult, 0, len(req.Results))
	for i, item := range req.Results {
		result, err := decodeResult(item)
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// decodeResult unmarshals the payload into the concrete variant named by the
// tag. Unknown tags fail with the unsupported-variant sentinel so callers can
// map them consistently with dispatch failures.
func decodeResult(req resultRequest) (apa.AnalysisResult, error) {
	if len(req.Result) == 0 {
		return nil, fmt.Errorf("decode request: missing result payload")
	}

	var (
		result apa.AnalysisResult
		err    error
	)
	switch req.Tag {
	case apa.VariantTTest:
		result, err = unmarshalAs[apa.TTestResult](req.Result)
	case apa.VariantCorrelation:
		result, err = unmarshalAs[apa.CorrelationResult](req.Result)
	case apa.VariantAnova:
		result, err = unmarshalAs[apa.AnovaResult](req.Result)
	case apa.VariantLinearModel:
		result, err = unmarshalAs[apa.LinearModelResult](req.Result)
	case apa.VariantChiSquare:
		result, err = unmarshalAs[apa.ChiSquareResult](req.Result)
	case apa.VariantBayesFactor:
		result, err = unmarshalAs[apa.BayesFactorResult](req.Result)
	case apa.VariantSampleComparison:
		result, err = unmarshalAs[apa.SampleComparison](req.Result)
	case apa.VariantPairedSamples:
		result, err = unmarshalAs[apa.PairedSamples](req.Result)
	case apa.VariantGroupedSamples:
		result, err = unmarshalAs[apa.GroupedSamples](req.Result)
	default:
		return nil, core.NewUnsupportedVariantError(string(req.Tag))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", req.Tag, err)
	}
	return result, nil
}

func unmarshalAs[T apa.AnalysisResult](raw json.RawMessage) (apa.AnalysisResult, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
