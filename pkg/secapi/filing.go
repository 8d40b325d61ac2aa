package secapi

import (
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/sjson"
)

// Sort orders
const (
	SortDesc = "desc"
	SortAsc  = "asc"
)

// Query is the full-text filing query
type Query struct {
	// QueryString is Lucene-style query, for example `cik:320193 AND formType:"10-K"`
	QueryString string
	From        int
	Size        int
	SortField   string
	SortOrder   string
}

// NewLatestFilingQuery returns a query for the most recent filing of formType by the filer
func NewLatestFilingQuery(cik, formType string) *Query {
	return &Query{
		QueryString: "cik:" + cik + " AND formType:" + strconv.Quote(formType),
		From:        0,
		Size:        1,
		SortField:   "filedAt",
		SortOrder:   SortDesc,
	}
}

// MarshalJSON returns the request body.
// The service expects from and size as strings.
func (q *Query) MarshalJSON() ([]byte, error) {
	js := []byte(`{}`)
	var err error
	js, err = sjson.SetBytes(js, "query.query_string.query", q.QueryString)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	js, err = sjson.SetBytes(js, "from", strconv.Itoa(q.From))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	js, err = sjson.SetBytes(js, "size", strconv.Itoa(q.Size))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if q.SortField != "" {
		order := q.SortOrder
		if order == "" {
			order = SortDesc
		}
		sort := []map[string]map[string]string{
			{q.SortField: {"order": order}},
		}
		js, err = sjson.SetBytes(js, "sort", sort)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return js, nil
}

// QueryResult is the response of the filing query
type QueryResult struct {
	Total   Record    `json:"total,omitempty"`
	Filings []*Filing `json:"filings"`
}

// Filing describes one filing.
// Only the links and the accession number are required by the pipeline,
// the rest of the record is preserved in Fields.
type Filing struct {
	ID                  string `json:"id,omitempty"`
	AccessionNo         string `json:"accessionNo,omitempty"`
	CIK                 string `json:"cik,omitempty"`
	Ticker              string `json:"ticker,omitempty"`
	CompanyName         string `json:"companyName,omitempty"`
	FormType            string `json:"formType,omitempty"`
	FiledAt             string `json:"filedAt,omitempty"`
	PeriodOfReport      string `json:"periodOfReport,omitempty"`
	LinkToFilingDetails string `json:"linkToFilingDetails,omitempty"`
	LinkToTxt           string `json:"linkToTxt,omitempty"`
	LinkToHTML          string `json:"linkToHtml,omitempty"`

	Fields Record `json:"-"`
}

type filingJSON Filing

// NewFiling returns Filing from the record
func NewFiling(r Record) *Filing {
	f := &Filing{
		ID:                  r.String("id"),
		AccessionNo:         r.String("accessionNo"),
		CIK:                 r.String("cik"),
		Ticker:              r.String("ticker"),
		CompanyName:         r.String("companyName"),
		FormType:            r.String("formType"),
		FiledAt:             r.String("filedAt"),
		PeriodOfReport:      r.String("periodOfReport"),
		LinkToFilingDetails: r.String("linkToFilingDetails"),
		LinkToTxt:           r.String("linkToTxt"),
		LinkToHTML:          r.String("linkToHtml"),
		Fields:              r,
	}
	if f.AccessionNo == "" {
		f.AccessionNo = r.String("accessionNumber")
	}
	return f
}

func (f *Filing) UnmarshalJSON(b []byte) error {
	var r Record
	if err := decodeBytes(b, &r); err != nil {
		return err
	}
	*f = *NewFiling(r)
	return nil
}

// MarshalJSON returns the original record if present
func (f Filing) MarshalJSON() ([]byte, error) {
	if f.Fields != nil {
		return json.Marshal(f.Fields)
	}
	return json.Marshal(filingJSON(f))
}
