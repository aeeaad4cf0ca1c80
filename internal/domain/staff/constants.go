package staff

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Fallback values for attributes the employee form does not collect.
const (
	DefaultPassword      = "defaultpass"
	DefaultImage         = "https://dummyjson.com/icon/default/128"
	DefaultBloodGroup    = "O+"
	DefaultHeight        = 175
	DefaultWeight        = 70
	DefaultEyeColor      = "Brown"
	DefaultHairColor     = "Brown"
	DefaultHairType      = "Straight"
	DefaultIP            = "0.0.0.0"
	DefaultStreet        = "123 Main St"
	DefaultStateCode     = "XX"
	DefaultPostalCode    = "00000"
	DefaultCountry       = "United States"
	DefaultMacAddress    = "00:00:00:00:00:00"
	DefaultUniversity    = "Unknown University"
	DefaultCardExpire    = "12/25"
	DefaultCardNumber    = "0000000000000000"
	DefaultCardType      = "Visa"
	DefaultCurrency      = "USD"
	DefaultIBAN          = "XXXXXXXXXXXXXXXXXXXX"
	DefaultCompanyName   = "Company Name"
	DefaultCompanyStreet = "123 Business St"
	DefaultEIN           = "000-000"
	DefaultSSN           = "000-00-0000"
	DefaultUserAgent     = "Unknown"
	DefaultCryptoCoin    = "Bitcoin"
	DefaultCryptoWallet  = "0x0000000000000000000000000000000000000000"
	DefaultCryptoNetwork = "Ethereum (ERC20)"
	BirthDateLayout      = "2006-01-02"
)
