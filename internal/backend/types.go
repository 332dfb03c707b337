package backend

import (
	"strconv"
	"strings"
	"time"
)

// envelope is the wrapper used by the wrapped endpoints. Customers API answers
// in PascalCase and IDC in camelCase; encoding/json matches keys case
// insensitively so one type serves both.
type envelope[T any] struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Value      *T     `json:"value"`
}

type VerifyUserRequest struct {
	TCKN string `json:"TCKN" mapstructure:"TCKN" validate:"required,tckn" label:"TCKN"`
	GSM  string `json:"GSM" mapstructure:"GSM" validate:"required,gsm" label:"GSM numarası"`
}

type VerifyUserResponse struct {
	CustomerID int64  `json:"customerId"`
	TCKN       string `json:"tckn"`
	GSM        string `json:"gsm"`
	IsNewUser  bool   `json:"isNewUser"`
}

type GenerateOtpRequest struct {
	TCKN  string `json:"tckn"`
	GSM   string `json:"gsm"`
	UtmID string `json:"utmId"`
}

type GenerateOtpResponse struct {
	OTPCode           int `json:"otpCode"`
	OtpID             int `json:"otpId"`
	SmsVerificationID int `json:"smsVerificationId"`
}

type SendOtpSmsRequest struct {
	GSM     string `json:"gsm"`
	OTPCode string `json:"otpCode"`
}

type SendOtpSmsResponse struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Message   string `json:"-"`
}

type VerifyOtpRequest struct {
	OTPCode string `json:"otpCode"`
}

type VerifyOtpResponse struct {
	Token string `json:"token"`
}

type KvkkText struct {
	ID      int    `json:"id"`
	Title   string `json:"name"`
	Text    string `json:"text"`
	Version string `json:"version"`
}

type KvkkApprovalRequest struct {
	CustomerID int64 `json:"CustomerId"`
	KvkkID     int   `json:"KvkkId"`
	IsOk       bool  `json:"isOk"`
}

type KvkkApproval struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// ReportSummary is an entry of the report list. The list endpoint only
// carries the id and a timestamp; the rest is derived for display.
type ReportSummary struct {
	ID         int    `json:"reportId"`
	ReportDate string `json:"reportDate"`
}

var reportDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func (r ReportSummary) ReportNumber() string { return "RPT-" + strconv.Itoa(r.ID) }

func (r ReportSummary) ReportName() string { return "Kredi Değerlendirme Raporu" }

// CreatedDate parses ReportDate and falls back to the current time when the
// backend sends something unparseable.
func (r ReportSummary) CreatedDate() time.Time {
	s := strings.TrimSpace(r.ReportDate)
	for _, layout := range reportDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}

func (r ReportSummary) FormattedDate() string { return r.CreatedDate().Format("02.01.2006 15:04") }

func (r ReportSummary) Status() string { return "completed" }

func (r ReportSummary) StatusDisplay() string { return "Tamamlandı" }

func (r ReportSummary) StatusBadgeClass() string { return "report_card__badge--success" }

func (r ReportSummary) CreditScore() *int { return nil }

type ReportDetail struct {
	ID             int      `json:"id"`
	ReportID       int      `json:"reportId,omitempty"`
	ReportNumber   string   `json:"reportNumber"`
	ReportName     string   `json:"reportName"`
	CreatedDate    Date     `json:"createdDate"`
	Status         string   `json:"status"`
	CreditScore    *int     `json:"creditScore"`
	RiskGroup      string   `json:"riskGroup,omitempty"`
	LoanAmount     *float64 `json:"loanAmount"`
	LoanTerm       *int     `json:"loanTerm"`
	InterestRate   *float64 `json:"interestRate"`
	MonthlyPayment *float64 `json:"monthlyPayment"`
	Notes          string   `json:"notes"`
	ApprovedBy     string   `json:"approvedBy"`
	ApprovedDate   *Date    `json:"approvedDate"`
}

type Address struct {
	City              string  `json:"city"`
	County            string  `json:"county"`
	District          string  `json:"district"`
	AddressDetail     string  `json:"addressDetail"`
	ResidenceDuration *int    `json:"residenceDuration"`
	HomeType          *string `json:"homeType"`
}

type Job struct {
	Company        string   `json:"company"`
	Position       string   `json:"position"`
	Sector         *string  `json:"sector"`
	EmploymentType *string  `json:"employmentType"`
	StartDate      *Date    `json:"startDate"`
	MonthlyIncome  *float64 `json:"monthlyIncome"`
}

type WifeInfo struct {
	WifeName         *string  `json:"wifeName"`
	WifeTCKN         *string  `json:"wifeTCKN"`
	WifePhone        *string  `json:"wifePhone"`
	MaritalStatus    *string  `json:"maritalStatus"`
	NumberOfChildren *int     `json:"numberOfChildren"`
	IsWifeWorking    *bool    `json:"isWifeWorking"`
	WifeSalaryAmount *float64 `json:"wifeSalaryAmount"`
}

// Married interprets the free-form marital status of the read model.
func (w WifeInfo) Married() bool {
	if w.MaritalStatus == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(*w.MaritalStatus)) {
	case "evli", "married", "true", "1":
		return true
	}
	return false
}

type Finance struct {
	HasCar          *bool    `json:"hasCar"`
	CarValue        *float64 `json:"carValue"`
	HasRealEstate   *bool    `json:"hasRealEstate"`
	RealEstateValue *float64 `json:"realEstateValue"`
	BankName        *string  `json:"bankName"`
	AccountBalance  *float64 `json:"accountBalance"`
	HasCreditCard   *bool    `json:"hasCreditCard"`
	CreditCardLimit *float64 `json:"creditCardLimit"`
	MonthlyExpenses *float64 `json:"monthlyExpenses"`
	WorkSector      *int     `json:"workSector"`
	SalaryAmount    *float64 `json:"salaryAmount"`
}

type SaveAddressRequest struct {
	CustomerID        int64   `json:"customerId" mapstructure:"-"`
	City              *string `json:"city" mapstructure:"city" validate:"omitempty,max=100" label:"İl"`
	County            *string `json:"county" mapstructure:"county" validate:"omitempty,max=100" label:"İlçe"`
	District          *string `json:"district" mapstructure:"district" validate:"omitempty,max=100" label:"Mahalle"`
	AddressDetail     *string `json:"addressDetail" mapstructure:"addressDetail" validate:"omitempty,max=500" label:"Adres"`
	ResidenceDuration *int    `json:"residenceDuration" mapstructure:"residenceDuration" validate:"omitempty,gte=0,lte=100" label:"İkamet süresi"`
	HomeType          *string `json:"homeType" mapstructure:"homeType" validate:"omitempty,max=50" label:"Konut tipi"`
}

type SaveJobRequest struct {
	CustomerID     int64    `json:"customerId" mapstructure:"-"`
	Company        *string  `json:"company" mapstructure:"company" validate:"omitempty,max=200" label:"Şirket"`
	Position       *string  `json:"position" mapstructure:"position" validate:"omitempty,max=100" label:"Pozisyon"`
	Sector         *string  `json:"sector" mapstructure:"sector" validate:"omitempty,max=100" label:"Sektör"`
	EmploymentType *string  `json:"employmentType" mapstructure:"employmentType" validate:"omitempty,max=50" label:"Çalışma şekli"`
	StartDate      *Date    `json:"startDate" mapstructure:"startDate" label:"İşe başlama tarihi"`
	MonthlyIncome  *float64 `json:"monthlyIncome" mapstructure:"monthlyIncome" validate:"omitempty,gte=0" label:"Aylık gelir"`
}

type SaveWifeInfoRequest struct {
	CustomerID       int64    `json:"customerId" mapstructure:"-"`
	MaritalStatus    bool     `json:"maritalStatus" mapstructure:"maritalStatus"`
	WorkWife         bool     `json:"workWife" mapstructure:"workWife"`
	WifeSalaryAmount *float64 `json:"wifeSalaryAmount" mapstructure:"wifeSalaryAmount" validate:"omitempty,gte=0" label:"Eş maaşı"`
}

type SaveFinanceRequest struct {
	CustomerID   int64    `json:"customerId" mapstructure:"-"`
	WorkSector   int      `json:"workSector" mapstructure:"workSector" validate:"gte=0" label:"Çalışma sektörü"`
	SalaryBank   *string  `json:"salaryBank" mapstructure:"salaryBank" validate:"omitempty,max=100" label:"Maaş bankası"`
	SalaryAmount *float64 `json:"salaryAmount" mapstructure:"salaryAmount" validate:"omitempty,gte=0" label:"Maaş"`
	CarStatus    bool     `json:"carStatus" mapstructure:"carStatus"`
	HouseStatus  bool     `json:"houseStatus" mapstructure:"houseStatus"`
}
