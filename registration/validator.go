package registration

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern   = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	accountPattern = regexp.MustCompile(`^\d{10,12}$`)
)

const (
	minPasswordLength = 8
	minAge            = 18
)

// Policy carries the configurable validation knobs. The initial-deposit
// minimum varies per deployment (999 and 1000 have both shipped), so it is
// policy rather than a constant. Strict additionally enforces the routing
// code, CVV, payment handle, and card expiry rules.
type Policy struct {
	MinInitialDeposit int64
	Strict            bool
}

// DefaultPolicy returns the validation policy used when the host configures
// nothing: $1000 floor, strict account checks off.
func DefaultPolicy() Policy {
	return Policy{MinInitialDeposit: 1000}
}

// Validator applies the registration rule set under a fixed [Policy].
type Validator struct {
	policy Policy
	now    func() time.Time
}

// NewValidator builds a Validator. A zero MinInitialDeposit is taken literally:
// a platform may genuinely accept empty opening balances.
func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy, now: time.Now}
}

// Validate runs every rule against req and returns the accumulated violations
// in field-declaration order. An empty slice means valid. Absent nested blocks
// contribute exactly one violation each and suppress only their own
// sub-rules; sibling blocks still run.
func (v *Validator) Validate(req Request) []string {
	var violations []string

	if req.UserID < 0 {
		violations = append(violations, MsgInvalidUserID)
	}
	if isBlank(req.FirstName) || isBlank(req.LastName) {
		violations = append(violations, MsgFullNameRequired)
	}
	if isBlank(req.Email) || !emailPattern.MatchString(req.Email) {
		violations = append(violations, MsgEmailRequired)
	}
	if len(req.Password) < minPasswordLength {
		violations = append(violations, MsgPasswordTooShort)
	}
	if isBlank(req.PhoneNumber) || !phonePattern.MatchString(req.PhoneNumber) {
		violations = append(violations, MsgPhoneNumberRequired)
	}
	if req.Age < minAge {
		violations = append(violations, MsgAgeRequirement)
	}

	violations = append(violations, v.validateAddress(req.Address)...)
	violations = append(violations, v.validateAccount(req.Account)...)

	return violations
}

func (v *Validator) validateAddress(addr *Address) []string {
	if addr == nil {
		return []string{MsgAddressRequired}
	}

	var violations []string
	if isBlank(addr.Street) {
		violations = append(violations, MsgStreetRequired)
	}
	if isBlank(addr.City) {
		violations = append(violations, MsgCityRequired)
	}
	if isBlank(addr.State) {
		violations = append(violations, MsgStateRequired)
	}
	if isBlank(addr.Country) {
		violations = append(violations, MsgCountryRequired)
	}
	if isBlank(addr.ZipCode) {
		violations = append(violations, MsgZipCodeRequired)
	}
	return violations
}

func (v *Validator) validateAccount(acct *AccountDetails) []string {
	if acct == nil {
		return []string{MsgAccountDetailsRequired}
	}

	var violations []string
	if isBlank(acct.AccountNumber) || !accountPattern.MatchString(acct.AccountNumber) {
		violations = append(violations, MsgAccountNumberRequired)
	}
	if isBlank(acct.BankName) {
		violations = append(violations, MsgBankNameRequired)
	}
	if isBlank(acct.Branch) {
		violations = append(violations, MsgBranchRequired)
	}

	if v.policy.Strict {
		if isBlank(acct.IFSCCode) {
			violations = append(violations, MsgInvalidIFSCCode)
		}
		if isBlank(acct.CVV) || len(acct.CVV) < 3 {
			violations = append(violations, MsgInvalidCVV)
		}
		if isBlank(acct.UPIHandle) || !strings.Contains(acct.UPIHandle, "@") {
			violations = append(violations, MsgInvalidUPI)
		}
		if acct.ExpiryDate.Before(v.now()) {
			violations = append(violations, MsgInvalidExpiryDate)
		}
	}

	if isBlank(acct.Nominee) {
		violations = append(violations, MsgNomineeRequired)
	}
	if acct.Balance < v.policy.MinInitialDeposit {
		violations = append(violations, fmt.Sprintf(MsgMinimumDeposit, v.policy.MinInitialDeposit))
	}

	if isBlank(acct.AccountType) {
		violations = append(violations, MsgAccountTypeRequired)
	} else if _, err := ParseAccountType(acct.AccountType); err != nil {
		violations = append(violations, MsgInvalidAccountType)
	}

	if isBlank(acct.Relation) {
		violations = append(violations, MsgRelationRequired)
	} else if _, err := ParseNomineeRelation(acct.Relation); err != nil {
		violations = append(violations, MsgInvalidRelation)
	}

	return violations
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
