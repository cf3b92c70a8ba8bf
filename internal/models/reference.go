package models

// OtherBanksID is the bank id used for transfers from banks outside the
// catalogue. It never reaches the backend.
const (
	OtherBanksID   = "0"
	OtherBanksName = "Otros Bancos"
)

type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Fund struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AccountCustomer struct {
	ID         string `json:"id"`
	Type       string `json:"type,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
}

type Account struct {
	ID       string          `json:"id"`
	Customer AccountCustomer `json:"customer"`
	Bank     BankRef         `json:"bank"`
	Country  string          `json:"country,omitempty"`
	Currency string          `json:"currency,omitempty"`
	Type     string          `json:"type,omitempty"`
	Number   string          `json:"number"`
	Primary  bool            `json:"primary"`
	Status   string          `json:"status,omitempty"`
}

type BankRef struct {
	ID string `json:"id"`
}

type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Employee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	MotherLastName string `json:"motherLastName,omitempty"`
}

// DisplayName is the short "name lastName" form printed as the requester.
func (e Employee) DisplayName() string {
	return joinNames(e.Name, e.LastName)
}
