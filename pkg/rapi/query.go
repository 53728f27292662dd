package rapi

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query holds the query parameters of one request before wire encoding.
//
// The RAPI has curious coercion rules for query values: nil is sent as an
// empty string, booleans are sent as 0 or 1, and nested mappings are
// rejected outright. Scalars and lists of scalars pass through unchanged.
type Query map[string]interface{}

// Coerce returns a copy of q with every value normalized to its wire-safe
// form. Coercion is a pure transform and idempotent: coercing an already
// coerced query yields an equal query.
func (q Query) Coerce() (Query, error) {
	coerced := make(Query, len(q))

	for name, value := range q {
		switch v := value.(type) {
		case nil:
			coerced[name] = ""
		case bool:
			if v {
				coerced[name] = 1
			} else {
				coerced[name] = 0
			}
		case Query:
			return nil, &InvalidQueryError{Key: name, Value: value}
		case map[string]interface{}:
			return nil, &InvalidQueryError{Key: name, Value: value}
		default:
			coerced[name] = value
		}
	}

	return coerced, nil
}

// Values coerces q and encodes it as URL parameters. List values become one
// key=value pair per element, matching urlencode's doseq semantics.
func (q Query) Values() (url.Values, error) {
	coerced, err := q.Coerce()
	if err != nil {
		return nil, err
	}

	values := make(url.Values, len(coerced))

	for name, value := range coerced {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				values.Add(name, item)
			}
		case []int:
			for _, item := range v {
				values.Add(name, strconv.Itoa(item))
			}
		case []interface{}:
			for _, item := range v {
				values.Add(name, scalarString(item))
			}
		default:
			values.Add(name, scalarString(value))
		}
	}

	return values, nil
}

func scalarString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
