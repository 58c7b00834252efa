package repair

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	fieldHours    = "hours"
	fieldCapacity = "capacity"

	// maxExponent keeps inputs like 1e999999999 from expanding into huge
	// strings when formatted.
	maxExponent = 30
)

// Missing-input messages returned to clients, one per input variant.
const (
	MissingInputMessage     = "Please pass capacity and hours on the query string or in the request body"
	MissingBodyInputMessage = "Please pass capacity and hours in the request body"
	NegativeInputMessage    = "Please pass non-negative values for capacity and hours"
)

// InputOptions selects how a request is resolved into hours and capacity.
type InputOptions struct {
	// AllowQueryOverride lets query-string values take precedence over body values.
	AllowQueryOverride bool
}

// MissingMessage is the client-facing text for ErrMissingInput under these options.
func (o InputOptions) MissingMessage() string {
	if o.AllowQueryOverride {
		return MissingInputMessage
	}
	return MissingBodyInputMessage
}

// ParseInput resolves hours and capacity from the query string and JSON body.
// A field that is absent or not numeric in every allowed source yields
// ErrMissingInput. A malformed body counts as an empty one.
func ParseInput(query url.Values, body []byte, opts InputOptions) (Request, error) {
	fields := bodyFields(body)

	hours, hoursOK := fields[fieldHours]
	capacity, capacityOK := fields[fieldCapacity]

	if opts.AllowQueryOverride {
		if v, ok := queryNumber(query, fieldHours); ok {
			hours, hoursOK = v, true
		}
		if v, ok := queryNumber(query, fieldCapacity); ok {
			capacity, capacityOK = v, true
		}
	}

	if !hoursOK || !capacityOK {
		return Request{}, ErrMissingInput
	}
	return Request{Hours: hours, Capacity: capacity}, nil
}

func queryNumber(query url.Values, key string) (decimal.Decimal, bool) {
	if query == nil {
		return decimal.Decimal{}, false
	}
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return decimal.Decimal{}, false
	}
	return parseNumber(raw)
}

// bodyFields extracts the numeric top-level fields of a JSON object body.
func bodyFields(body []byte) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, 2)
	if len(bytes.TrimSpace(body)) == 0 {
		return out
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return out
	}

	for _, key := range []string{fieldHours, fieldCapacity} {
		if v, ok := jsonNumber(obj[key]); ok {
			out[key] = v
		}
	}
	return out
}

func jsonNumber(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case json.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(strings.TrimSpace(v))
	default:
		return decimal.Decimal{}, false
	}
}

func parseNumber(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}
