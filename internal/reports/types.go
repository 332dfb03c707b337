package reports

import (
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
)

type ReportDetailRequest struct {
	ReportID int `path:"reportId" doc:"Report id"`
}

type ReportDetailResponse struct {
	Body backend.ReportDetail
}

// detailError is the body the report pages' scripts expect on failure.
type detailError struct {
	status  int
	IsError bool   `json:"error"`
	Message string `json:"message"`
}

func (e *detailError) Error() string  { return e.Message }
func (e *detailError) GetStatus() int { return e.status }

type reportsPage struct {
	view.Page
	Reports []backend.ReportSummary
}

type reportDetailPage struct {
	view.Page
	Report  *backend.ReportDetail
	RawBody string
}
