package constant

// User facing messages.
const (
	MSG_LOGIN_FAILED       = "Giriş bilgileri doğrulanamadı. Lütfen TCKN ve GSM bilgilerinizi kontrol ediniz."
	MSG_OTP_INVALID_INPUT  = "Lütfen 6 haneli SMS şifresini giriniz."
	MSG_OTP_FAILED         = "Girdiğiniz SMS şifresi hatalı veya süresi dolmuş. Lütfen tekrar deneyin."
	MSG_SESSION_MISSING    = "Oturum bilgileri bulunamadı. Lütfen giriş sayfasından tekrar deneyin."
	MSG_OTP_NOT_GENERATED  = "OTP oluşturulamadı."
	MSG_SMS_NOT_SENT       = "SMS gönderilemedi."
	MSG_SMS_RESENT         = "SMS tekrar gönderildi."
	MSG_REPORT_NOT_FOUND   = "Rapor bulunamadı."
	MSG_REPORT_INVALID_ID  = "Geçersiz rapor ID'si. Lütfen Dashboard'dan tekrar deneyin."
	MSG_REPORT_EMPTY       = "API'den veri dönmedi. Lütfen daha sonra tekrar deneyin."
	MSG_LOAN_APPLIED       = "Kredi başvurunuz başarıyla alınmıştır. Başvuru numaranız: "
	MSG_LOAN_FAILED        = "Başvuru gönderilirken bir hata oluştu. Lütfen tekrar deneyin."
	MSG_UNAUTHORIZED       = "Oturumunuzun süresi doldu. Lütfen tekrar giriş yapın."
	MSG_ADDRESS_SAVED      = "Adres bilgileri başarıyla kaydedildi."
	MSG_JOB_SAVED          = "Meslek bilgileri başarıyla kaydedildi."
	MSG_WIFE_SAVED         = "Eş bilgileri başarıyla kaydedildi."
	MSG_FINANCE_SAVED      = "Varlık bilgileri başarıyla kaydedildi."
	MSG_INVALID_FORM       = "Lütfen formdaki hataları düzeltin."
	MSG_KVKK_APPROVAL_SENT = "KVKK onayı başarıyla kaydedildi."
)
