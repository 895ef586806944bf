package api

import (
	"encoding/json"
	"unicode"
	"unicode/utf8"
)

// decodeNormalized decodes backend JSON into out after folding object keys
// to a lower-first-letter form. The backend mixes camelCase and PascalCase
// across endpoints ("idCobro" vs "IdCobro"); folding here keeps a single
// normalization boundary instead of per-field fallbacks in every entity.
func decodeNormalized(raw json.RawMessage, out any) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	folded, err := json.Marshal(foldKeys(value))
	if err != nil {
		return err
	}
	return json.Unmarshal(folded, out)
}

// foldKeys lower-cases the first rune of every object key, recursively.
func foldKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[foldKey(key)] = foldKeys(val)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = foldKeys(item)
		}
		return v
	default:
		return value
	}
}

func foldKey(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return key
	}
	return string(unicode.ToLower(r)) + key[size:]
}
