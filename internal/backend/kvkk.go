package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

const (
	OpKvkkText         = "kvkk-text"
	OpSaveKvkkApproval = "save-kvkk-approval"
)

// KvkkText fetches the consent document with the given id. A document without
// text is treated as a failure.
func (c *Client) KvkkText(ctx context.Context, id int) (*KvkkText, error) {
	text, err := direct[KvkkText](ctx, c, call{
		op:     OpKvkkText,
		method: http.MethodGet,
		base:   c.config.IdcAPI,
		path:   "kvkk/text/" + strconv.Itoa(id),
		key:    c.config.Keys.KvkkTextKey,
	}, messages{
		failed:     "KVKK metni alınırken bir hata oluştu.",
		unexpected: "KVKK metni alınırken beklenmeyen bir hata oluştu.",
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text.Text) == "" {
		return nil, &Error{Op: OpKvkkText, StatusCode: http.StatusInternalServerError, Message: "KVKK metni boş veya geçersiz."}
	}
	return text, nil
}

var approvalKeywords = []string{"başarılı", "success", "oluşturuldu"}

// SaveKvkkApproval records the customer's answer to a consent document. The
// endpoint answers with JSON or with a plain text confirmation.
func (c *Client) SaveKvkkApproval(ctx context.Context, req KvkkApprovalRequest) (*KvkkApproval, error) {
	cl := call{
		op:     OpSaveKvkkApproval,
		method: http.MethodPost,
		base:   c.config.IdcAPI,
		path:   "kvkk/onay",
		key:    c.config.Keys.KvkkSaveKey,
		body:   req,
	}
	msgs := messages{
		failed:     "KVKK onayı kaydedilirken bir hata oluştu.",
		unexpected: "KVKK onayı kaydedilirken beklenmeyen bir hata oluştu.",
	}

	resp, err := c.do(ctx, cl)
	if err != nil {
		return nil, msgs.transport(cl.op, err)
	}
	if !resp.ok() {
		return nil, &Error{Op: cl.op, StatusCode: resp.status, Message: msgs.failed, Body: string(resp.body)}
	}

	var approval KvkkApproval
	if err := json.Unmarshal(resp.body, &approval); err == nil && approval.ID > 0 {
		if approval.Message == "" {
			approval.Message = "KVKK onayı başarıyla kaydedildi."
		}
		return &approval, nil
	}

	text := string(resp.body)
	lower := strings.ToLower(text)
	for _, keyword := range approvalKeywords {
		if strings.Contains(text, keyword) {
			return &KvkkApproval{Message: "KVKK onayı başarıyla kaydedildi."}, nil
		}
	}
	if strings.Contains(lower, "ok") {
		return &KvkkApproval{Message: "KVKK onayı başarıyla kaydedildi."}, nil
	}

	return nil, &Error{
		Op:         cl.op,
		StatusCode: http.StatusInternalServerError,
		Message:    "KVKK onayı durumu belirsiz.",
		Body:       text,
	}
}
