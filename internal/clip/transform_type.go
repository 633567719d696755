package clip

import (
	"encoding/json"
	"fmt"
)

// TransformKind names the transform that produced a Transformation.
type TransformKind string

const (
	KindTranslation    TransformKind = "Translation"
	KindNumberFormat   TransformKind = "NumberFormat"
	KindDateFormat     TransformKind = "DateFormat"
	KindJSONPretty     TransformKind = "JsonPretty"
	KindCSVToMarkdown  TransformKind = "CsvToMarkdown"
	KindSummary        TransformKind = "Summary"
	KindToneAdjustment TransformKind = "ToneAdjustment"
)

// TransformType identifies a transform together with its parameters.
// Only Translation (From, To) and ToneAdjustment (Tone) carry data.
//
// On the wire, plain kinds are bare strings ("NumberFormat") and kinds with
// parameters are single-key objects ({"ToneAdjustment":{"tone":"cleaned"}}).
type TransformType struct {
	Kind TransformKind
	From string
	To   string
	Tone string
}

// NumberFormat returns the TransformType for digit grouping.
func NumberFormat() TransformType {
	return TransformType{Kind: KindNumberFormat}
}

// ToneAdjustment returns a ToneAdjustment TransformType with the given tone.
func ToneAdjustment(tone string) TransformType {
	return TransformType{Kind: KindToneAdjustment, Tone: tone}
}

// Translation returns a Translation TransformType for a locale pair.
func Translation(from, to string) TransformType {
	return TransformType{Kind: KindTranslation, From: from, To: to}
}

func (t TransformType) hasParams() bool {
	return t.Kind == KindTranslation || t.Kind == KindToneAdjustment
}

func knownKind(k TransformKind) bool {
	switch k {
	case KindTranslation, KindNumberFormat, KindDateFormat, KindJSONPretty,
		KindCSVToMarkdown, KindSummary, KindToneAdjustment:
		return true
	}
	return false
}

// String renders the kind and its parameters for human display.
func (t TransformType) String() string {
	switch t.Kind {
	case KindTranslation:
		return fmt.Sprintf("Translation(from=%s, to=%s)", t.From, t.To)
	case KindToneAdjustment:
		return fmt.Sprintf("ToneAdjustment(tone=%s)", t.Tone)
	}
	return string(t.Kind)
}

type translationParams struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type toneParams struct {
	Tone string `json:"tone"`
}

// MarshalJSON implements json.Marshaler.
func (t TransformType) MarshalJSON() ([]byte, error) {
	if !knownKind(t.Kind) {
		return nil, fmt.Errorf("transform_type: unknown kind %q", t.Kind)
	}
	switch t.Kind {
	case KindTranslation:
		return json.Marshal(map[TransformKind]translationParams{
			t.Kind: {From: t.From, To: t.To},
		})
	case KindToneAdjustment:
		return json.Marshal(map[TransformKind]toneParams{
			t.Kind: {Tone: t.Tone},
		})
	}
	return json.Marshal(string(t.Kind))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TransformType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		kind := TransformKind(name)
		if !knownKind(kind) {
			return fmt.Errorf("transform_type: unknown kind %q", name)
		}
		parsed := TransformType{Kind: kind}
		if parsed.hasParams() {
			return fmt.Errorf("transform_type: %s requires parameters", name)
		}
		*t = parsed
		return nil
	}

	var tagged map[TransformKind]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("transform_type: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("transform_type: expected exactly one key, got %d", len(tagged))
	}

	for kind, raw := range tagged {
		switch kind {
		case KindTranslation:
			var p translationParams
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("transform_type %s: %w", kind, err)
			}
			*t = Translation(p.From, p.To)
		case KindToneAdjustment:
			var p toneParams
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("transform_type %s: %w", kind, err)
			}
			*t = ToneAdjustment(p.Tone)
		default:
			return fmt.Errorf("transform_type: unexpected parameters for %q", kind)
		}
	}
	return nil
}
