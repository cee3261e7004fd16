// Package intake turns raw application submissions into the canonical
// details document and checks them against a listing's time slot.
//
// Submissions arrive in several historical shapes. Each loosely typed field
// is decoded by trying the known shapes in a fixed order and falling back to
// a safe default, so every normalizer is a pure raw -> canonical function.
package intake

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"work-exchange-api/modules/application/entity"
)

const (
	defaultLanguageLevel = "native"
	defaultPhotoFormat   = "jpg"
	defaultPhotoType     = "image"
)

// RawDetails is the submission payload as clients send it.
type RawDetails struct {
	Message             string `json:"message"`
	Motivation          string `json:"motivation"`
	Experience          string `json:"experience"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	Duration            any    `json:"duration"`
	Skills              any    `json:"skills"`
	Languages           any    `json:"languages"`
	DietaryRestrictions any    `json:"dietary_restrictions"`
	Photos              any    `json:"photos"`
	PhotoDescriptions   any    `json:"photo_descriptions"`
	VideoIntroduction   any    `json:"video_introduction"`
	TermsAgreed         any    `json:"terms_agreed"`
}

// Normalize canonicalizes raw. Warnings describe input that was dropped
// rather than rejected.
func Normalize(raw RawDetails) (entity.Details, []string) {
	var warnings []string

	duration, ok := NormalizeDuration(raw.Duration)
	if !ok && raw.Duration != nil {
		warnings = append(warnings, fmt.Sprintf("duration %v is not a whole number of days", raw.Duration))
	}
	photos, dropped := NormalizePhotos(raw.Photos)
	for _, i := range dropped {
		warnings = append(warnings, fmt.Sprintf("photos[%d] has no recognizable url and was dropped", i))
	}

	return entity.Details{
		Message:             strings.TrimSpace(raw.Message),
		Motivation:          strings.TrimSpace(raw.Motivation),
		Experience:          strings.TrimSpace(raw.Experience),
		Skills:              toStrings(raw.Skills),
		StartDate:           strings.TrimSpace(raw.StartDate),
		EndDate:             strings.TrimSpace(raw.EndDate),
		Duration:            duration,
		Languages:           NormalizeLanguages(raw.Languages),
		DietaryRestrictions: NormalizeDietaryRestrictions(raw.DietaryRestrictions),
		Photos:              photos,
		PhotoDescriptions:   NormalizePhotoDescriptions(raw.PhotoDescriptions),
		VideoIntroduction:   NormalizeVideoIntroduction(raw.VideoIntroduction),
		TermsAgreed:         Truthy(raw.TermsAgreed),
	}, warnings
}

func defaultDietaryRestrictions() entity.DietaryRestrictions {
	return entity.DietaryRestrictions{Type: []string{}}
}

// NormalizeDietaryRestrictions accepts nothing, a JSON-encoded string, a
// bare string, a list of types or an object.
func NormalizeDietaryRestrictions(raw any) entity.DietaryRestrictions {
	switch v := raw.(type) {
	case nil:
		return defaultDietaryRestrictions()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return defaultDietaryRestrictions()
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			if _, stillString := decoded.(string); !stillString {
				return NormalizeDietaryRestrictions(decoded)
			}
		}
		return entity.DietaryRestrictions{Type: []string{s}}
	case []any:
		return entity.DietaryRestrictions{Type: toStrings(v)}
	case map[string]any:
		d := defaultDietaryRestrictions()
		d.Type = toStrings(v["type"])
		d.OtherDetails = scalarString(pick(v, "other_details", "otherDetails"))
		d.VegetarianType = scalarString(pick(v, "vegetarian_type", "vegetarianType"))
		return d
	default:
		return defaultDietaryRestrictions()
	}
}

// NormalizeLanguages accepts objects and "Name(Level)" strings. A missing
// level means native.
func NormalizeLanguages(raw any) []entity.Language {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case string, map[string]any:
		items = []any{v}
	}

	out := []entity.Language{}
	for _, item := range items {
		var lang entity.Language
		switch v := item.(type) {
		case string:
			lang = parseLanguage(v)
		case map[string]any:
			lang.Language = strings.TrimSpace(scalarString(pick(v, "language", "name")))
			lang.Level = strings.TrimSpace(scalarString(v["level"]))
		}
		if lang.Language == "" {
			continue
		}
		if lang.Level == "" {
			lang.Level = defaultLanguageLevel
		}
		out = append(out, lang)
	}
	return out
}

func parseLanguage(s string) entity.Language {
	name, level, found := strings.Cut(s, "(")
	lang := entity.Language{Language: strings.TrimSpace(name)}
	if found {
		lang.Level = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(level), ")"))
	}
	return lang
}

// NormalizePhotos accepts canonical photos and raw upload resources
// ({public_id, secure_url, ...}). It returns the indexes of entries that
// matched neither shape.
func NormalizePhotos(raw any) ([]entity.Photo, []int) {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	}

	out := []entity.Photo{}
	var dropped []int
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			dropped = append(dropped, i)
			continue
		}
		url := scalarString(m["url"])
		if url == "" {
			url = scalarString(pick(m, "secure_url", "secureUrl"))
		}
		if url == "" {
			dropped = append(dropped, i)
			continue
		}
		photo := entity.Photo{
			URL:    url,
			Width:  wholeNumber(m["width"]),
			Height: wholeNumber(m["height"]),
			Format: scalarString(m["format"]),
			Type:   scalarString(pick(m, "type", "resource_type", "resourceType")),
		}
		if photo.Format == "" {
			photo.Format = defaultPhotoFormat
		}
		if photo.Type == "" {
			photo.Type = defaultPhotoType
		}
		out = append(out, photo)
	}
	return out, dropped
}

// NormalizePhotoDescriptions keeps an object keyed by photo; the legacy
// list form and anything else become empty.
func NormalizePhotoDescriptions(raw any) map[string]string {
	out := map[string]string{}
	m, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	for k, v := range m {
		if s := scalarString(v); s != "" {
			out[k] = s
		}
	}
	return out
}

// NormalizeVideoIntroduction wraps a bare URL string.
func NormalizeVideoIntroduction(raw any) *entity.VideoIntroduction {
	var url string
	switch v := raw.(type) {
	case string:
		url = v
	case map[string]any:
		url = scalarString(v["url"])
		if url == "" {
			url = scalarString(pick(v, "secure_url", "secureUrl"))
		}
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	return &entity.VideoIntroduction{URL: url}
}

// NormalizeDuration reads a positive whole number of days from a number or
// a numeric string.
func NormalizeDuration(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Truthy coerces v the way a double negation would: nil, false, zero and
// the empty string are false, everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

func toStrings(raw any) []string {
	out := []string{}
	switch v := raw.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

// scalarString stringifies strings, numbers and booleans; other shapes
// become empty.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func wholeNumber(v any) int {
	switch t := v.(type) {
	case float64:
		if t < 0 || t > math.MaxInt32 {
			return 0
		}
		return int(t)
	case string:
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return 0
}

func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
