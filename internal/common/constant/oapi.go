package constant

const (
	OAPI_TITLE            = "InteraktifKredi Web"
	OAPI_VERSION          = "1.0.0"
	OAPI_SECURITY_SCHEME  = "SessionCookie"
	OAPI_TAG_MISC         = "Miscellaneous"
	OAPI_TAG_AUTH         = "Authentication"
	OAPI_TAG_KVKK         = "KVKK"
	OAPI_TAG_REPORT       = "Reports"
	OAPI_SPEC_UI          = `<!doctypehtml><title>API Reference</title><meta charset=utf-8><meta content="width=device-width,initial-scale=1"name=viewport><body><script data-url=/openapi.json id=api-reference></script><script src=https://cdn.jsdelivr.net/npm/@scalar/api-reference></script>`
	OAPI_SPEC_DESCRIPTION = `
Browser-facing JSON endpoints of the InteraktifKredi loan application site.

The site authenticates a customer with TCKN + GSM, confirms possession of the
phone with an SMS one-time password and then lets the customer complete the
profile forms, approve the KVKK consent text and browse credit-bureau reports.
All data lives in the Customers and IDC backends; this service only forwards
requests to them.
`
)
