package models

// Party is a customer or supplier. Bills and invoices reference it by name.
type Party struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Mobile        string `json:"mobile"`
	AdharNumber   string `json:"adharNumber"`
	PanNumber     string `json:"panNumber"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	Timestamp     int64  `json:"timestamp"`
}
