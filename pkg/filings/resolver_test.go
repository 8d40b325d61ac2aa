package filings_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/mocks/mocksecapi"
	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/fintools/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "AAPL", filings.NormalizeTicker("  aapl\t"))
	assert.Equal(t, "BRK.B", filings.NormalizeTicker("brk.b"))
	assert.Equal(t, "", filings.NormalizeTicker("   "))
}

func TestFirstIdentifier(t *testing.T) {
	tcases := []struct {
		name    string
		records []secapi.Record
		exp     string
	}{
		{"empty", nil, ""},
		{"cik", []secapi.Record{{"cik": "320193"}}, "320193"},
		{"upper", []secapi.Record{{"CIK": " 320193 "}}, "320193"},
		{"cik_str number", []secapi.Record{{"cik_str": 320193}}, "320193"},
		{"cikNumber", []secapi.Record{{"cikNumber": "0000320193"}}, "0000320193"},
		{"priority", []secapi.Record{{"cikNumber": "4", "cik_str": "3", "CIK": "2", "cik": "1"}}, "1"},
		{"skip blank", []secapi.Record{{"cik": "  ", "CIK": "2"}}, "2"},
		{"second record", []secapi.Record{{"name": "Apple"}, {"cik": "320193"}}, "320193"},
		{"null", []secapi.Record{{"cik": nil}}, ""},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, filings.FirstIdentifier(tc.records))
		})
	}
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit for same normalized ticker", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "AAPL").
			Return(&secapi.SingleRecord{Record: secapi.Record{"ticker": "AAPL", "cik": "320193"}}, nil).
			Times(1)

		r := filings.NewResolver(api, nil)
		cik, err := r.Resolve(ctx, "aapl")
		require.NoError(t, err)
		assert.Equal(t, "320193", cik)

		cik, err = r.Resolve(ctx, "  AAPL ")
		require.NoError(t, err)
		assert.Equal(t, "320193", cik)
	})

	t.Run("blank ticker", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)

		r := filings.NewResolver(api, nil)
		for _, ticker := range []string{"", "   "} {
			_, err := r.Resolve(ctx, ticker)
			require.Error(t, err)
			assert.True(t, errors.Is(err, filings.ErrInvalidArgument))
			assert.EqualError(t, err, "ticker symbol must be provided")
		}
	})

	t.Run("bare list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "MSFT").
			Return(secapi.RecordList{
				{"ticker": "MSFT", "cik": ""},
				{"ticker": "MSFT", "cik": "789019"},
			}, nil)

		cik, err := filings.NewResolver(api, nil).Resolve(ctx, "msft")
		require.NoError(t, err)
		assert.Equal(t, "789019", cik)
	})

	t.Run("wrapped list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "GOOG").
			Return(&secapi.WrappedRecords{Data: []secapi.Record{{"CIK": "1652044"}}}, nil)

		cik, err := filings.NewResolver(api, nil).Resolve(ctx, "GOOG")
		require.NoError(t, err)
		assert.Equal(t, "1652044", cik)
	})

	t.Run("unmapped is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "NOPE").
			Return(secapi.RecordList{}, nil).
			Times(2)

		r := filings.NewResolver(api, nil)
		for range 2 {
			_, err := r.Resolve(ctx, "nope")
			require.Error(t, err)
			assert.True(t, errors.Is(err, filings.ErrResolutionFailed))
			assert.False(t, errors.Is(err, filings.ErrUpstreamUnavailable))
			assert.EqualError(t, err, `unable to map ticker "NOPE" to a CIK`)
		}
	})

	t.Run("nil response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "NIL").Return(nil, nil)

		_, err := filings.NewResolver(api, nil).Resolve(ctx, "nil")
		assert.True(t, errors.Is(err, filings.ErrResolutionFailed))
	})

	t.Run("upstream failure is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		gomock.InOrder(
			api.EXPECT().Resolve(gomock.Any(), "ticker", "IBM").
				Return(nil, errors.New("connection reset")),
			api.EXPECT().Resolve(gomock.Any(), "ticker", "IBM").
				Return(secapi.RecordList{{"cik": "51143"}}, nil),
		)

		r := filings.NewResolver(api, nil)
		_, err := r.Resolve(ctx, "IBM")
		require.Error(t, err)
		assert.True(t, errors.Is(err, filings.ErrUpstreamUnavailable))
		assert.EqualError(t, err, `failed to resolve ticker "IBM": connection reset`)

		cik, err := r.Resolve(ctx, "IBM")
		require.NoError(t, err)
		assert.Equal(t, "51143", cik)
	})

	t.Run("shared cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		cache := store.NewMemoryStore()
		require.NoError(t, cache.Set(ctx, "ticker/TSLA", "1318605"))

		cik, err := filings.NewResolver(api, cache).Resolve(ctx, "tsla")
		require.NoError(t, err)
		assert.Equal(t, "1318605", cik)
	})

	t.Run("cache failure is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "NVDA").
			Return(secapi.RecordList{{"cik": "1045810"}}, nil).
			Times(2)

		r := filings.NewResolver(api, failingCache{})
		for range 2 {
			cik, err := r.Resolve(ctx, "NVDA")
			require.NoError(t, err)
			assert.Equal(t, "1045810", cik)
		}
	})

	t.Run("concurrent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocksecapi.NewMockMappingAPI(ctrl)
		api.EXPECT().Resolve(gomock.Any(), "ticker", "AMZN").
			Return(secapi.RecordList{{"cik": "1018724"}}, nil).
			MinTimes(1)

		cache := store.NewMemoryStore()
		r := filings.NewResolver(api, cache)

		var wg sync.WaitGroup
		results := make([]string, 20)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = r.Resolve(ctx, "amzn")
			}(i)
		}
		wg.Wait()

		for _, cik := range results {
			assert.Equal(t, "1018724", cik)
		}
		val, ok, err := cache.Get(ctx, "ticker/AMZN")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1018724", val)
	})
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("cache is down")
}

func (failingCache) Set(context.Context, string, string) error {
	return errors.New("cache is down")
}
