package dashboard

import (
	"net/http"

	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
)

type KvkkTextRequest struct {
	ID int `path:"id" minimum:"1" doc:"KVKK document id"`
}

type KvkkApprovalRequest struct {
	Body struct {
		KvkkID int  `json:"kvkkId" required:"false" doc:"KVKK document id, defaults to the configured document"`
		IsOk   bool `json:"isOk" doc:"Whether the customer approved the text"`
	}
}

type KvkkApprovalResponse struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

type dashboardPage struct {
	view.Page
	Kvkk      *backend.KvkkText
	KvkkError string
}
