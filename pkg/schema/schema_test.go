package schema_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/effective-security/fintools/pkg/schema"
	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FilingTextRequest is the input of the filing text lookup
type FilingTextRequest struct {
	Ticker   string `json:"ticker" jsonschema:"title=Ticker,description=Stock ticker symbol,example=AAPL"`
	Sections string `json:"sections,omitempty" jsonschema:"title=Sections,description=Comma-separated list of items\\, for example 1\\,1A\\,7"`
}

// Period is the reporting period
type Period struct {
	From string `json:"from" jsonschema:"title=From,description=Start date"`
	To   string `json:"to" jsonschema:"title=To,description=End date"`
}

// Search is the filing search request
type Search struct {
	Query   string    `json:"query" jsonschema:"title=Query,description=Full-text query"`
	Form    string    `json:"form" jsonschema:"title=Form,description=Form type,default=10-K,enum=10-K,enum=10-Q,enum=8-K"`
	Periods []*Period `json:"periods,omitempty" jsonschema:"title=Periods,description=Reporting periods"`
	Latest  *Period   `json:"latest,omitempty" jsonschema:"title=Latest,description=Latest period"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("FilingTextRequest", func(t *testing.T) {
		t.Parallel()
		si, err := schema.New(reflect.TypeOf(FilingTextRequest{}))
		require.NoError(t, err)
		exp := `{
	"properties": {
		"ticker": {
			"type": "string",
			"title": "Ticker",
			"description": "Stock ticker symbol",
			"examples": [
				"AAPL"
			]
		},
		"sections": {
			"type": "string",
			"title": "Sections",
			"description": "Comma-separated list of items, for example 1,1A,7"
		}
	},
	"type": "object",
	"required": [
		"ticker"
	]
}`
		assert.Equal(t, exp, si.String())

		// cached
		si2, err := schema.New(reflect.TypeOf(FilingTextRequest{}))
		require.NoError(t, err)
		assert.Same(t, si, si2)
	})

	t.Run("Search", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New(reflect.TypeOf(Search{}))
		require.NoError(t, err)

		exp := `{
	"properties": {
		"query": {
			"type": "string",
			"title": "Query",
			"description": "Full-text query"
		},
		"form": {
			"type": "string",
			"enum": [
				"10-K",
				"10-Q",
				"8-K"
			],
			"title": "Form",
			"description": "Form type",
			"default": "10-K"
		},
		"periods": {
			"items": {
				"properties": {
					"from": {
						"type": "string",
						"title": "From",
						"description": "Start date"
					},
					"to": {
						"type": "string",
						"title": "To",
						"description": "End date"
					}
				},
				"type": "object",
				"required": [
					"from",
					"to"
				]
			},
			"type": "array",
			"title": "Periods",
			"description": "Reporting periods"
		},
		"latest": {
			"properties": {
				"from": {
					"type": "string",
					"title": "From",
					"description": "Start date"
				},
				"to": {
					"type": "string",
					"title": "To",
					"description": "End date"
				}
			},
			"type": "object",
			"required": [
				"from",
				"to"
			],
			"title": "Latest",
			"description": "Latest period"
		}
	},
	"type": "object",
	"required": [
		"query",
		"form"
	]
}`
		assert.Equal(t, exp, s.String())

		var sc jsonschema.Schema
		err = json.Unmarshal([]byte(exp), &sc)
		require.NoError(t, err)
		assert.Equal(t, 4, sc.Properties.Len())
	})
}

func TestSchemaFromAny(t *testing.T) {
	t.Parallel()

	sc, err := schema.FromAny(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type": "string",
			},
		},
		"required": []string{"symbol"},
	})
	require.NoError(t, err)

	exp := `{
	"properties": {
		"symbol": {
			"type": "string"
		}
	},
	"type": "object",
	"required": [
		"symbol"
	]
}`
	js, err := json.MarshalIndent(sc, "", "\t")
	require.NoError(t, err)
	assert.Equal(t, exp, string(js))

	_, err = schema.FromAny(map[string]any{"type": func() {}})
	assert.Error(t, err)

	// null decodes to empty schema
	sc, err = schema.FromAny(nil)
	require.NoError(t, err)
	assert.Empty(t, sc.Type)
}
