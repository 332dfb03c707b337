package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            uint32 `env:"PORT" envDefault:"8080"`
	IsDevelopment   bool   `env:"IS_DEVELOPMENT"`
	ShutdownTimeout int64  `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	Upstream        Upstream
	Session         Session
	Kvkk            Kvkk
	Vault           Vault
}

// Upstream describes the two serverless backends. Every endpoint is guarded
// by its own function key sent as the `code` query parameter.
type Upstream struct {
	CustomersAPI string        `env:"CUSTOMERS_API_URL"`
	IdcAPI       string        `env:"IDC_API_URL"`
	BearerToken  string        `env:"API_BEARER_TOKEN" mapstructure:"bearer_token"`
	Timeout      time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	RetryMax     int           `env:"API_RETRY_MAX" envDefault:"2"`
	OtpUtmID     string        `env:"OTP_UTM_ID" envDefault:"5"`
	Keys         FunctionKeys
}

type FunctionKeys struct {
	FunctionKey            string `env:"FUNCTION_KEY" mapstructure:"function_key"`
	OtpGenerateKey         string `env:"OTP_GENERATE_KEY" mapstructure:"otp_generate_key"`
	OtpSendKey             string `env:"OTP_SEND_KEY" mapstructure:"otp_send_key"`
	OtpVerifyKey           string `env:"OTP_VERIFY_KEY" mapstructure:"otp_verify_key"`
	KvkkTextKey            string `env:"KVKK_TEXT_KEY" mapstructure:"kvkk_text_key"`
	KvkkSaveKey            string `env:"KVKK_SAVE_KEY" mapstructure:"kvkk_save_key"`
	DummyReportKey         string `env:"DUMMY_REPORT_KEY" mapstructure:"dummy_report_key"`
	ReportDetailKey        string `env:"REPORT_DETAIL_KEY" mapstructure:"report_detail_key"`
	CustomerAddressKey     string `env:"CUSTOMER_ADDRESS_KEY" mapstructure:"customer_address_key"`
	JobInformationKey      string `env:"JOB_INFORMATION_KEY" mapstructure:"job_information_key"`
	WifeInformationKey     string `env:"WIFE_INFORMATION_KEY" mapstructure:"wife_information_key"`
	CustomerFinanceKey     string `env:"CUSTOMER_FINANCE_KEY" mapstructure:"customer_finance_key"`
	SaveCustomerAddressKey string `env:"SAVE_CUSTOMER_ADDRESS_KEY" mapstructure:"save_customer_address_key"`
	SaveJobInformationKey  string `env:"SAVE_JOB_INFORMATION_KEY" mapstructure:"save_job_information_key"`
	SaveWifeInformationKey string `env:"SAVE_WIFE_INFORMATION_KEY" mapstructure:"save_wife_information_key"`
	SaveCustomerFinanceKey string `env:"SAVE_CUSTOMER_FINANCE_KEY" mapstructure:"save_customer_finance_key"`
}

type Session struct {
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	PendingTTL   time.Duration `env:"PENDING_LOGIN_TTL" envDefault:"10m"`
	CookieSecure bool          `env:"COOKIE_SECURE"`
}

type Kvkk struct {
	DocumentID int  `env:"KVKK_DOCUMENT_ID" envDefault:"1"`
	ShowForAll bool `env:"KVKK_SHOW_FOR_ALL"`
}

type Vault struct {
	URL        string `env:"VAULT_URL"`
	Token      string `env:"VAULT_TOKEN"`
	Mount      string `env:"VAULT_KV_MOUNT" envDefault:"secret"`
	SecretPath string `env:"VAULT_SECRET_PATH" envDefault:"interaktifkredi/upstream"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Upstream.CustomersAPI == "" {
		errs = append(errs, errors.New("CUSTOMERS_API_URL is required"))
	}
	if c.Upstream.IdcAPI == "" {
		errs = append(errs, errors.New("IDC_API_URL is required"))
	}
	if len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
