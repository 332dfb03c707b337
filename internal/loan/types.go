package loan

import (
	"github.com/mirzahilmi/interaktifkredi/internal/form"
	"github.com/mirzahilmi/interaktifkredi/internal/view"
)

// JobPublicEmployee is the job id of public employees, who must name their
// institution and position.
const JobPublicEmployee = 1

const defaultLoanAmount = 50000

var loanTypes = []string{"İhtiyaç Kredisi", "Taşıt Kredisi", "Konut Kredisi", "Ticari Kredi"}

var loanTerms = []int{3, 6, 12, 18, 24, 36, 48, 60}

type Application struct {
	LoanType        string  `mapstructure:"LoanType" validate:"required" label:"Kredi türü"`
	LoanAmount      float64 `mapstructure:"LoanAmount" validate:"required,gte=10000,lte=1000000" label:"Kredi tutarı"`
	LoanTerm        int     `mapstructure:"LoanTerm" validate:"required,gt=0" label:"Kredi vadesi"`
	JobID           int     `mapstructure:"JobID" label:"Meslek"`
	InstitutionName string  `mapstructure:"InstitutionName" validate:"required_if=JobID 1,max=200" label:"Kurum adı"`
	Position        string  `mapstructure:"Position" validate:"required_if=JobID 1,max=100" label:"Görev"`
	Description     string  `mapstructure:"Description" validate:"max=500" label:"Açıklama"`
}

type applyPage struct {
	view.Page
	LoanTypes []string
	LoanTerms []int
	Form      Application
	Errors    form.Errors
}
