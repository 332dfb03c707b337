package profile

import (
	"github.com/mirzahilmi/interaktifkredi/internal/backend"
	"github.com/mirzahilmi/interaktifkredi/internal/form"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
)

const (
	TabAddress = "address"
	TabJob     = "job"
	TabWife    = "wife"
	TabFinance = "finance"
)

type tab struct {
	ID    string
	Title string
}

var tabs = []tab{
	{TabAddress, "Adres Bilgileri"},
	{TabJob, "Meslek Bilgileri"},
	{TabWife, "Eş Bilgileri"},
	{TabFinance, "Varlık Bilgileri"},
}

var homeTypes = []string{"Ev Sahibi", "Kiracı", "Aile Yanı", "Lojman"}

type sector struct {
	ID   int
	Name string
}

var sectors = []sector{
	{0, "Seçiniz"},
	{1, "Kamu"},
	{2, "Özel Sektör"},
	{3, "Serbest Meslek"},
	{4, "Emekli"},
	{5, "Diğer"},
}

type profilePage struct {
	view.Page
	ActiveTab string
	Tabs      []tab
	HomeTypes []string
	Sectors   []sector
	Address   backend.SaveAddressRequest
	Job       backend.SaveJobRequest
	Wife      backend.SaveWifeInfoRequest
	Finance   backend.SaveFinanceRequest
	Errors    form.Errors
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func addressForm(customerID int64, a *backend.Address) backend.SaveAddressRequest {
	return backend.SaveAddressRequest{
		CustomerID:        customerID,
		City:              nonEmpty(a.City),
		County:            nonEmpty(a.County),
		District:          nonEmpty(a.District),
		AddressDetail:     nonEmpty(a.AddressDetail),
		ResidenceDuration: a.ResidenceDuration,
		HomeType:          a.HomeType,
	}
}

func jobForm(customerID int64, j *backend.Job) backend.SaveJobRequest {
	return backend.SaveJobRequest{
		CustomerID:     customerID,
		Company:        nonEmpty(j.Company),
		Position:       nonEmpty(j.Position),
		Sector:         j.Sector,
		EmploymentType: j.EmploymentType,
		StartDate:      j.StartDate,
		MonthlyIncome:  j.MonthlyIncome,
	}
}

func wifeForm(customerID int64, w *backend.WifeInfo) backend.SaveWifeInfoRequest {
	return backend.SaveWifeInfoRequest{
		CustomerID:       customerID,
		MaritalStatus:    w.Married(),
		WorkWife:         w.IsWifeWorking != nil && *w.IsWifeWorking,
		WifeSalaryAmount: w.WifeSalaryAmount,
	}
}

func financeForm(customerID int64, f *backend.Finance) backend.SaveFinanceRequest {
	out := backend.SaveFinanceRequest{
		CustomerID:   customerID,
		SalaryBank:   f.BankName,
		SalaryAmount: f.SalaryAmount,
		CarStatus:    f.HasCar != nil && *f.HasCar,
		HouseStatus:  f.HasRealEstate != nil && *f.HasRealEstate,
	}
	if f.WorkSector != nil {
		out.WorkSector = *f.WorkSector
	}
	return out
}
