package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  map[string][]string
	auth   string
	body   map[string]any
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, rec recorded)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			auth:   r.Header.Get("Authorization"),
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		calls = append(calls, rec)
		handler(w, r, rec)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Upstream{
		CustomersAPI: srv.URL + "/customers/",
		IdcAPI:       srv.URL + "/idc",
		BearerToken:  "token",
		Timeout:      2 * time.Second,
		RetryMax:     0,
		OtpUtmID:     "5",
		Keys: config.FunctionKeys{
			FunctionKey:            "fk",
			OtpGenerateKey:         "gen",
			OtpSendKey:             "send",
			OtpVerifyKey:           "verify",
			KvkkTextKey:            "kvkk-text",
			KvkkSaveKey:            "kvkk-save",
			DummyReportKey:         "reports",
			ReportDetailKey:        "report",
			CustomerAddressKey:     "addr",
			WifeInformationKey:     "wife",
			SaveWifeInformationKey: "save-wife",
			SaveCustomerAddressKey: "save-addr",
		},
	}
	return New(cfg, metrics.New()), &calls
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestVerifyUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
			writeJSON(w, http.StatusOK, `{"Success":true,"StatusCode":200,"Message":"ok","Value":{"CustomerId":42,"Tckn":"12345678901","Gsm":"5551112233","IsNewUser":true}}`)
		})

		user, err := client.VerifyUser(context.Background(), VerifyUserRequest{TCKN: "12345678901", GSM: "5551112233"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.CustomerID)
		assert.True(t, user.IsNewUser)

		require.Len(t, *calls, 1)
		call := (*calls)[0]
		assert.Equal(t, http.MethodPost, call.method)
		assert.Equal(t, "/customers/api/customer/tckn-gsm", call.path)
		assert.Equal(t, "fk", call.query["code"][0])
		assert.Equal(t, "Bearer token", call.auth)
		assert.Equal(t, "12345678901", call.body["TCKN"])
		assert.Equal(t, "5551112233", call.body["GSM"])
	})

	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, "", "Yetkilendirme hatası. Lütfen sistem yöneticinizle iletişime geçin."},
		{"not found", http.StatusNotFound, "", "Kullanıcı bulunamadı. Lütfen TCKN ve GSM bilgilerinizi kontrol edin."},
		{"bad request", http.StatusBadRequest, "", "Geçersiz istek. Lütfen girdiğiniz bilgileri kontrol edin."},
		{"server error", http.StatusInternalServerError, "boom", "Sunucu hatası (500). Detay: boom"},
		{"other", http.StatusBadGateway, "", "Kullanıcı doğrulama başarısız. Lütfen daha sonra tekrar deneyin."},
		{"rejected", http.StatusOK, `{"Success":false,"StatusCode":404,"Message":"Müşteri yok"}`, "Müşteri yok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
				writeJSON(w, tc.status, tc.body)
			})

			_, err := client.VerifyUser(context.Background(), VerifyUserRequest{TCKN: "12345678901", GSM: "5551112233"})
			require.Error(t, err)
			assert.Equal(t, tc.message, Message(err, ""))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		client := New(config.Upstream{CustomersAPI: "http://127.0.0.1:1", Timeout: time.Second}, nil)

		_, err := client.VerifyUser(context.Background(), VerifyUserRequest{TCKN: "12345678901", GSM: "5551112233"})
		require.Error(t, err)
		assert.Equal(t, "API ile bağlantı kurulamadı. Lütfen internet bağlantınızı kontrol edin.", Message(err, ""))
		assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	})
}

func TestGenerateOtp(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
		writeJSON(w, http.StatusOK, `{"success":true,"statusCode":200,"message":"","value":{"otpCode":123456,"otpId":7,"smsVerificationId":9}}`)
	})

	otp, err := client.GenerateOtp(context.Background(), "12345678901", "5551112233")
	require.NoError(t, err)
	assert.Equal(t, "123456", otp.Code())

	call := (*calls)[0]
	assert.Equal(t, "/idc/generate-otp", call.path)
	assert.Equal(t, "gen", call.query["code"][0])
	assert.Equal(t, "5", call.body["utmId"])
}

func TestSendOtpSms(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		sent    bool
		message string
	}{
		{"plain text success", http.StatusOK, "SMS başarıyla gönderildi", true, "SMS başarıyla gönderildi."},
		{"wrapped", http.StatusOK, `{"Success":true,"Message":"tamam","Value":{"Sent":true,"MessageId":"m1"}}`, true, "tamam"},
		{"plain text other", http.StatusOK, "queued", true, "queued"},
		{"json string", http.StatusOK, `"queued"`, true, `"queued"`},
		{"json bool", http.StatusOK, `true`, true, "true"},
		{"wrapped failure", http.StatusOK, `{"Success":false,"Message":"hata"}`, false, "SMS durumu belirsiz."},
		{"success keyword wins over envelope", http.StatusOK, `{"success":false}`, true, "SMS başarıyla gönderildi."},
		{"non 2xx", http.StatusBadGateway, "", false, "SMS gönderilirken bir hata oluştu."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
				writeJSON(w, tc.status, tc.body)
			})

			resp, err := client.SendOtpSms(context.Background(), "5551112233", "123456")
			if !tc.sent {
				require.Error(t, err)
				assert.Equal(t, tc.message, Message(err, ""))
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Sent)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestPostsAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client.reads.RetryMax = 3
	client.reads.RetryWaitMin = time.Millisecond
	client.reads.RetryWaitMax = time.Millisecond

	_, err := client.VerifyOtp(context.Background(), "123456")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())

	hits.Store(0)
	_, err = client.KvkkText(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, int32(4), hits.Load())
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := New(config.Upstream{
		CustomersAPI: base,
		IdcAPI:       base,
		Timeout:      time.Second,
	}, nil)
	ctx := context.Background()

	_, err := client.VerifyUser(ctx, VerifyUserRequest{TCKN: "10000000146", GSM: "5551112233"})
	require.Error(t, err)
	assert.Equal(t, "API ile bağlantı kurulamadı. Lütfen internet bağlantınızı kontrol edin.", Message(err, ""))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	cases := []struct {
		name    string
		call    func() error
		message string
	}{
		{"generate otp", func() error { _, err := client.GenerateOtp(ctx, "10000000146", "5551112233"); return err },
			"OTP oluşturulurken beklenmeyen bir hata oluştu."},
		{"send sms", func() error { _, err := client.SendOtpSms(ctx, "5551112233", "123456"); return err },
			"SMS gönderilirken beklenmeyen bir hata oluştu."},
		{"kvkk text", func() error { _, err := client.KvkkText(ctx, 1); return err },
			"KVKK metni alınırken beklenmeyen bir hata oluştu."},
		{"report list", func() error { _, err := client.ReportList(ctx); return err },
			"Rapor listesi alınırken beklenmeyen bir hata oluştu."},
		{"save address", func() error { return client.SaveCustomerAddress(ctx, SaveAddressRequest{CustomerID: 42}) },
			"Adres bilgileri kaydedilirken beklenmeyen bir hata oluştu."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.Equal(t, tc.message, Message(err, ""))
			assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
		})
	}
}

func TestReportSummaryCreatedDate(t *testing.T) {
	want := time.Date(2025, 1, 10, 14, 30, 0, 0, time.Local)
	cases := []struct {
		date string
		want time.Time
	}{
		{"2025-01-10 14:30", want},
		{"2025-01-10 14:30:00", want},
		{"2025-01-10T14:30:00", want},
		{" 2025-01-10 14:30 ", want},
		{"2025-01-10", time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got := ReportSummary{ID: 1, ReportDate: tc.date}.CreatedDate()
		assert.True(t, tc.want.Equal(got), "%q parsed as %v", tc.date, got)
	}

	rfc := ReportSummary{ReportDate: "2025-01-10T14:30:00Z"}.CreatedDate()
	assert.True(t, time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC).Equal(rfc))

	for _, garbage := range []string{"", "garbage", "10/01/2025"} {
		got := ReportSummary{ReportDate: garbage}.CreatedDate()
		assert.WithinDuration(t, time.Now(), got, 5*time.Second, garbage)
	}
	assert.Equal(t, "10.01.2025 14:30", ReportSummary{ReportDate: "2025-01-10 14:30"}.FormattedDate())
}

func TestKvkkText(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
			writeJSON(w, http.StatusOK, `{"Id":1,"Name":"Aydınlatma Metni","Text":"<p>metin</p>","Version":"1.0"}`)
		})

		text, err := client.KvkkText(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Aydınlatma Metni", text.Title)
		assert.Equal(t, "/idc/kvkk/text/1", (*calls)[0].path)
	})

	t.Run("blank text", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
			writeJSON(w, http.StatusOK, `{"Id":1,"Text":"  "}`)
		})

		_, err := client.KvkkText(context.Background(), 1)
		assert.Equal(t, "KVKK metni boş veya geçersiz.", Message(err, ""))
	})
}

func TestSaveKvkkApproval(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		ok      bool
		message string
	}{
		{"json", `{"id":3,"message":"Kaydedildi"}`, true, "Kaydedildi"},
		{"json without message", `{"id":3}`, true, "KVKK onayı başarıyla kaydedildi."},
		{"plain text", "Kayıt oluşturuldu", true, "KVKK onayı başarıyla kaydedildi."},
		{"ok", "OK", true, "KVKK onayı başarıyla kaydedildi."},
		{"unclear", `{"id":0}`, false, "KVKK onayı durumu belirsiz."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
				writeJSON(w, http.StatusOK, tc.body)
			})

			approval, err := client.SaveKvkkApproval(context.Background(), KvkkApprovalRequest{CustomerID: 42, KvkkID: 1, IsOk: true})
			if !tc.ok {
				assert.Equal(t, tc.message, Message(err, ""))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.message, approval.Message)
			assert.Equal(t, float64(42), (*calls)[0].body["CustomerId"])
			assert.Equal(t, true, (*calls)[0].body["isOk"])
		})
	}
}

func TestReports(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
		switch r.URL.Path {
		case "/idc/dummy/report-list":
			writeJSON(w, http.StatusOK, `{"success":true,"value":[{"reportId":5,"reportDate":"2024-03-01 10:30"}]}`)
		case "/idc/GetReportDetail":
			if r.URL.Query().Get("id") != "5" {
				writeJSON(w, http.StatusNotFound, `{"error":"missing"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"id":5,"reportNumber":"RPT-5","createdDate":"2024-03-01T10:30:00","creditScore":1450}`)
		}
	})

	list, err := client.ReportList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "RPT-5", list[0].ReportNumber())
	assert.Equal(t, "01.03.2024 10:30", list[0].FormattedDate())

	detail, err := client.ReportDetail(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, detail.CreditScore)
	assert.Equal(t, 1450, *detail.CreditScore)
	assert.Equal(t, 2024, detail.CreatedDate.Year())

	_, err = client.ReportDetail(context.Background(), 6)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, `{"error":"missing"}`, Body(err))
	assert.Len(t, *calls, 3)
}

func TestProfile(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/customers/api/customer/address/42":
			writeJSON(w, http.StatusOK, `{"City":"İstanbul","ResidenceDuration":3}`)
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, `null`)
		case r.URL.Path == "/customers/api/customer/address":
			writeJSON(w, http.StatusBadRequest, "city missing")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	address, err := client.CustomerAddress(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "İstanbul", address.City)
	assert.Equal(t, 3, *address.ResidenceDuration)

	_, err = client.WifeInfo(ctx, 42)
	require.Error(t, err)

	err = client.SaveCustomerAddress(ctx, SaveAddressRequest{CustomerID: 42})
	require.Error(t, err)
	assert.Equal(t, "Adres bilgileri kaydedilemedi. Hata: city missing", Message(err, ""))

	require.NoError(t, client.SaveWifeInfo(ctx, 42, SaveWifeInfoRequest{MaritalStatus: true}))
	last := (*calls)[len(*calls)-1]
	assert.Equal(t, "/customers/api/customer/wife-info/42", last.path)
	assert.Equal(t, "save-wife", last.query["code"][0])
	assert.Equal(t, float64(42), last.body["customerId"])
	assert.Equal(t, true, last.body["maritalStatus"])
}

func TestRedactURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request, rec recorded) {})
	u, err := client.url(call{base: "https://idc.example/api/", path: "/verify-otp", key: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "https://idc.example/api/verify-otp?code=secret", u.String())
	assert.Equal(t, "https://idc.example/api/verify-otp?code=REDACTED", redactURL(u))
	assert.Equal(t, "GET /x?code=REDACTED&a=b", functionKeyPattern.ReplaceAllString("GET /x?code=abc&a=b", "${1}REDACTED"))
}
