package constant

const (
	COOKIE_SESSION = "ik_session"
	COOKIE_PENDING = "ik_pending"
	COOKIE_FLASH   = "ik_flash"

	HEADER_REQUEST_ID = "X-Request-Id"
)
