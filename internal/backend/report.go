package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	OpReportList   = "report-list"
	OpReportDetail = "report-detail"
)

// ReportList returns the reports of the signed in customer.
func (c *Client) ReportList(ctx context.Context) ([]ReportSummary, error) {
	reports, _, err := wrapped[[]ReportSummary](ctx, c, call{
		op:     OpReportList,
		method: http.MethodGet,
		base:   c.config.IdcAPI,
		path:   "dummy/report-list",
		key:    c.config.Keys.DummyReportKey,
	}, messages{
		failed:     "Rapor listesi alınırken bir hata oluştu.",
		unexpected: "Rapor listesi alınırken beklenmeyen bir hata oluştu.",
		rejected:   "Rapor listesi alınamadı.",
	})
	if err != nil {
		return nil, err
	}
	return *reports, nil
}

func (c *Client) ReportDetail(ctx context.Context, id int) (*ReportDetail, error) {
	return direct[ReportDetail](ctx, c, call{
		op:     OpReportDetail,
		method: http.MethodGet,
		base:   c.config.IdcAPI,
		path:   "GetReportDetail",
		key:    c.config.Keys.ReportDetailKey,
		query:  url.Values{"id": {strconv.Itoa(id)}},
	}, messages{
		failed:     "Rapor detayı alınırken bir hata oluştu.",
		unexpected: "Rapor detayı alınırken beklenmeyen bir hata oluştu.",
	})
}
