package registration

// Violation messages, kept byte-for-byte compatible with the client-facing
// strings of the system payauth replaces. MsgMinimumDeposit is a format
// string because the minimum is policy, not a constant.
const (
	MsgInvalidUserID       = "User id is invalid"
	MsgFullNameRequired    = "Full name is required."
	MsgEmailRequired       = "A valid email address is required."
	MsgPasswordTooShort    = "Password must be at least 8 characters long."
	MsgPhoneNumberRequired = "A valid phone number is required."
	MsgAgeRequirement      = "User must be at least 18 years old."

	MsgAddressRequired = "Address is required."
	MsgStreetRequired  = "Street is required."
	MsgCityRequired    = "City is required."
	MsgStateRequired   = "State is required."
	MsgCountryRequired = "Country is required."
	MsgZipCodeRequired = "Zip code is required."

	MsgAccountDetailsRequired = "Account details are required."
	MsgAccountNumberRequired  = "A valid account number (10-12 digits) is required."
	MsgBankNameRequired       = "Bank name is required."
	MsgBranchRequired         = "Branch is required."
	MsgInvalidIFSCCode        = "IFSC code is invalid"
	MsgInvalidCVV             = "CVV is invalid"
	MsgInvalidUPI             = "UPI id is invalid"
	MsgInvalidExpiryDate      = "Date of expiry is invalid"
	MsgNomineeRequired        = "Nominee is required."
	MsgRelationRequired       = "Relationship with nominee is required."
	MsgInvalidRelation        = "Invalid Relation with nominee provided. Valid types are: Father, Mother, Spouse, Husband, Brother, Sister, Child"
	MsgAccountTypeRequired    = "Account type is required."
	MsgInvalidAccountType     = "Invalid account type provided. Valid types are: Saving, Checking, Loan, Business."

	MsgMinimumDeposit = "Initial deposit must be at least $%d."
)

// Outcome codes and summary messages reported by registration responses and
// audit metadata, preserved from the replaced system.
const (
	CodeUserAlreadyExists  = "USR001"
	CodeValidationFailed   = "COM001"
	CodeRegistrationFailed = "USR002"

	MsgUserAlreadyExists   = "An user with this email already exists."
	MsgValidationFailed    = "User request validation failed."
	MsgRegistrationFailed  = "User registration failed."
	MsgRegistrationSuccess = "User registered successfully."
)
