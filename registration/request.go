package registration

import "time"

// Request is the registration input DTO. It is consumed once by the validator
// and, when valid, mapped into a user record candidate by the Engine; it is
// never persisted as-is.
type Request struct {
	UserID      int64           `json:"userId"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	PhoneNumber string          `json:"phoneNumber"`
	Age         int             `json:"age"`
	Role        string          `json:"role,omitempty"`
	Address     *Address        `json:"address"`
	Account     *AccountDetails `json:"accountDetails"`
}

// Address is the postal-address block of a registration request.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// AccountDetails is the bank-account block of a registration request.
// ExpiryDate is the card/CVV expiry, not an account lifetime.
type AccountDetails struct {
	AccountNumber string    `json:"accountNumber"`
	BankName      string    `json:"bankName"`
	Branch        string    `json:"branch"`
	IFSCCode      string    `json:"ifscCode"`
	BankCode      string    `json:"bankCode,omitempty"`
	CVV           string    `json:"cvv"`
	UPIHandle     string    `json:"upiId"`
	ExpiryDate    time.Time `json:"dateOfExpiry"`
	Nominee       string    `json:"nominee"`
	Relation      string    `json:"relationWithNominee"`
	AccountType   string    `json:"accountType"`
	Balance       int64     `json:"balance"`
}
