package sec_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/mocks/mockfilings"
	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/tools/sec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testFiling() *secapi.Filing {
	return secapi.NewFiling(secapi.Record{
		"accessionNo":         "0000320193-24-000123",
		"formType":            "10-K",
		"filedAt":             "2024-11-01T06:01:36-04:00",
		"linkToFilingDetails": "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm",
		"linkToTxt":           "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/0000320193-24-000123.txt",
	})
}

func decode(t *testing.T, js string) map[string]any {
	t.Helper()
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &res))
	return res
}

func TestGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mockfilings.NewMockProvider(ctrl)

	g := sec.NewGroup(p)
	assert.Equal(t, sec.GroupName, g.Name())

	list := g.Tools()
	require.Len(t, list, 3)

	exp := map[string][]string{
		sec.ToolMapTickerToCIK:       {"sec", "mapping", "ticker", "cik"},
		sec.ToolLatestFilingMetadata: {"sec", "filing", "10-K", "metadata"},
		sec.ToolLatestFilingText:     {"sec", "filing", "10-K", "text"},
	}
	for _, tool := range list {
		tags, ok := exp[tool.Name()]
		require.True(t, ok, tool.Name())
		assert.Equal(t, tags, tools.TagsOf(tool))
		assert.Equal(t, tools.KindTool, tools.KindOf(tool))
		assert.NotEmpty(t, tool.Description())
		assert.NotNil(t, tool.Parameters())

		ann := tools.AnnotationsOf(tool)
		require.NotNil(t, ann)
		assert.NotEmpty(t, ann.Title)
		assert.True(t, ann.ReadOnly)
		assert.True(t, ann.OpenWorld)
	}
}

func TestMapTicker(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	p := mockfilings.NewMockProvider(ctrl)
	tool := sec.NewMapTickerTool(p)

	p.EXPECT().ResolveCIK(gomock.Any(), " aapl ").Return("320193", nil)
	out, err := tool.Call(ctx, `{"ticker":" aapl "}`)
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"AAPL","cik":"320193"}`, out)

	p.EXPECT().ResolveCIK(gomock.Any(), "ZZZZ").
		Return("", errors.Mark(errors.New(`unable to map ticker "ZZZZ" to a CIK`), filings.ErrResolutionFailed))
	out, err = tool.Call(ctx, `{"ticker":"ZZZZ"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"error":"unable to map ticker \"ZZZZ\" to a CIK"}`, out)

	t.Run("bad input", func(t *testing.T) {
		out, err := tool.Call(ctx, `not a json`)
		require.NoError(t, err)
		res := decode(t, out)
		assert.Contains(t, res["error"], "failed to unmarshal input")
	})
}

func TestLatestFilingMetadata(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	p := mockfilings.NewMockProvider(ctrl)
	tool := sec.NewLatestFilingMetadataTool(p)

	p.EXPECT().ResolveCIK(gomock.Any(), "AAPL").Return("320193", nil).Times(3)

	p.EXPECT().LatestFiling(gomock.Any(), "320193").Return(testFiling(), nil)
	out, err := tool.Call(ctx, `{"ticker":"AAPL"}`)
	require.NoError(t, err)
	res := decode(t, out)
	assert.Equal(t, "AAPL", res["ticker"])
	assert.Equal(t, "320193", res["cik"])
	filing, ok := res["filing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0000320193-24-000123", filing["accessionNo"])
	assert.Equal(t, "10-K", filing["formType"])

	// not found is not an error
	p.EXPECT().LatestFiling(gomock.Any(), "320193").Return(nil, nil)
	out, err = tool.Call(ctx, `{"ticker":"AAPL"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"AAPL","cik":"320193","filing":null}`, out)

	p.EXPECT().LatestFiling(gomock.Any(), "320193").
		Return(nil, errors.Mark(errors.New("failed to query 10-K filings for CIK 320193: timeout"), filings.ErrUpstreamUnavailable))
	out, err = tool.Call(ctx, `{"ticker":"AAPL"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"error":"failed to query 10-K filings for CIK 320193: timeout"}`, out)
}

func TestLatestFilingText(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	p := mockfilings.NewMockProvider(ctrl)
	tool := sec.NewLatestFilingTextTool(p)

	t.Run("text", func(t *testing.T) {
		p.EXPECT().ResolveCIK(gomock.Any(), "msft").Return("789019", nil)
		p.EXPECT().LatestFiling(gomock.Any(), "789019").Return(testFiling(), nil)
		p.EXPECT().ExtractText(gomock.Any(), gomock.Any(), []string{"1A", "7"}).Return("Item 1A\nRisks", true)

		out, err := tool.Call(ctx, `{"ticker":"msft","sections":" 1A, ,7,1A"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"ticker":"MSFT","cik":"789019","accessionNumber":"0000320193-24-000123","text":"Item 1A\nRisks"}`, out)
	})

	t.Run("default sections", func(t *testing.T) {
		p.EXPECT().ResolveCIK(gomock.Any(), "MSFT").Return("789019", nil)
		p.EXPECT().LatestFiling(gomock.Any(), "789019").Return(testFiling(), nil)
		p.EXPECT().ExtractText(gomock.Any(), gomock.Any(), gomock.Nil()).Return("", false)

		out, err := tool.Call(ctx, `{"ticker":"MSFT","sections":" , "}`)
		require.NoError(t, err)
		assert.Equal(t, `{"ticker":"MSFT","cik":"789019","accessionNumber":"0000320193-24-000123","text":null}`, out)
	})

	t.Run("no filing", func(t *testing.T) {
		p.EXPECT().ResolveCIK(gomock.Any(), "MSFT").Return("789019", nil)
		p.EXPECT().LatestFiling(gomock.Any(), "789019").Return(nil, nil)
		p.EXPECT().FormType().Return("10-K")

		out, err := tool.Call(ctx, `{"ticker":"MSFT"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"ticker":"MSFT","cik":"789019","text":null}`, out)
	})

	t.Run("blank ticker", func(t *testing.T) {
		p.EXPECT().ResolveCIK(gomock.Any(), "  ").
			Return("", errors.Mark(errors.New("ticker symbol must be provided"), filings.ErrInvalidArgument))

		out, err := tool.Call(ctx, `{"ticker":"  "}`)
		require.NoError(t, err)
		assert.Equal(t, `{"error":"ticker symbol must be provided"}`, out)
	})
}
