package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

var errInvalidJSON = errors.New("response is not valid JSON")

// decodeAttractions accepts any array body. Elements that are not objects
// become empty results and unknown keys are kept in Extra.
func decodeAttractions(body []byte) ([]domain.AttractionResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode search response: %w", errInvalidJSON)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("decode search response: expected a JSON array, got %s", parsed.Type)
	}

	elements := parsed.Array()
	results := make([]domain.AttractionResult, 0, len(elements))
	for _, element := range elements {
		results = append(results, decodeAttraction(element))
	}

	return results, nil
}

func decodeAttraction(element gjson.Result) domain.AttractionResult {
	var result domain.AttractionResult
	if !element.IsObject() {
		return result
	}

	element.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		var ok bool
		switch strings.ToLower(name) {
		case "id":
			result.ID, ok = stringField(value)
		case "name":
			result.Name, ok = stringField(value)
		case "url":
			result.URL, ok = stringField(value)
		case "telephone", "phone":
			result.Phone, ok = stringField(value)
		case "address":
			result.Address, ok = stringField(value)
		case "tags":
			result.Tags, ok = stringField(value)
		case "score":
			result.Score, ok = numberField(value)
		case "image_url", "imageurl":
			result.ImageURL, ok = stringField(value)
		}
		if !ok {
			if result.Extra == nil {
				result.Extra = map[string]json.RawMessage{}
			}
			result.Extra[name] = json.RawMessage(value.Raw)
		}
		return true
	})

	return result
}

func stringField(value gjson.Result) (*string, bool) {
	switch value.Type {
	case gjson.Null:
		return nil, true
	case gjson.String:
		return domain.StringPtr(value.Str), true
	case gjson.Number:
		return domain.StringPtr(value.Raw), true
	default:
		return nil, false
	}
}

func numberField(value gjson.Result) (*float64, bool) {
	switch value.Type {
	case gjson.Null:
		return nil, true
	case gjson.Number:
		number := value.Num
		return &number, true
	case gjson.String:
		number, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return nil, false
		}
		return &number, true
	default:
		return nil, false
	}
}

func decodeImageURL(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("decode image response: %w", errInvalidJSON)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return "", fmt.Errorf("decode image response: expected a JSON object, got %s", parsed.Type)
	}

	value := parsed.Get("image_url")
	if !value.Exists() {
		value = parsed.Get("imageUrl")
	}
	if value.Type != gjson.String || strings.TrimSpace(value.Str) == "" {
		return "", domain.ErrNoImage
	}

	return strings.TrimSpace(value.Str), nil
}
