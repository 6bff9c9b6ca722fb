package registration

import (
	"errors"
	"strings"
)

// AccountType is the closed set of bank-account products a registration may
// open.
type AccountType string

const (
	AccountTypeSaving   AccountType = "Saving"
	AccountTypeChecking AccountType = "Checking"
	AccountTypeLoan     AccountType = "Loan"
	AccountTypeBusiness AccountType = "Business"
)

// NomineeRelation is the closed set of accepted nominee relationships.
type NomineeRelation string

const (
	RelationFather  NomineeRelation = "Father"
	RelationMother  NomineeRelation = "Mother"
	RelationSpouse  NomineeRelation = "Spouse"
	RelationHusband NomineeRelation = "Husband"
	RelationBrother NomineeRelation = "Brother"
	RelationSister  NomineeRelation = "Sister"
	RelationChild   NomineeRelation = "Child"
)

// ErrUnknownAccountType carries the exact valid-values feedback surfaced to
// end users when an account type fails to parse.
var ErrUnknownAccountType = errors.New(MsgInvalidAccountType)

// ErrUnknownNomineeRelation is the parse failure for nominee relations.
var ErrUnknownNomineeRelation = errors.New(MsgInvalidRelation)

var accountTypes = []AccountType{
	AccountTypeSaving,
	AccountTypeChecking,
	AccountTypeLoan,
	AccountTypeBusiness,
}

var nomineeRelations = []NomineeRelation{
	RelationFather,
	RelationMother,
	RelationSpouse,
	RelationHusband,
	RelationBrother,
	RelationSister,
	RelationChild,
}

// ParseAccountType resolves s case-insensitively to a canonical [AccountType].
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range accountTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", ErrUnknownAccountType
}

// ParseNomineeRelation resolves s case-insensitively to a canonical
// [NomineeRelation].
func ParseNomineeRelation(s string) (NomineeRelation, error) {
	for _, r := range nomineeRelations {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", ErrUnknownNomineeRelation
}
