package staff

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"staffdesk/internal/platform/validate"
)

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips markup and surrounding space from free-text input.
func cleanText(value string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(value)))
}

func (f EmployeeForm) Normalize() EmployeeForm {
	return EmployeeForm{
		FirstName:  cleanText(f.FirstName),
		LastName:   cleanText(f.LastName),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		Age:        f.Age,
		Gender:     strings.TrimSpace(f.Gender),
		Department: cleanText(f.Department),
		Title:      cleanText(f.Title),
		Role:       strings.TrimSpace(f.Role),
		Username:   cleanText(f.Username),
		City:       cleanText(f.City),
		State:      cleanText(f.State),
	}
}

func (f EmployeeForm) Validate() []validate.Issue {
	return validate.Struct(f)
}

// FormFromEmployee pre-fills the edit form from an existing record.
func FormFromEmployee(e Employee) EmployeeForm {
	return EmployeeForm{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Age:        e.Age,
		Gender:     e.Gender,
		Department: e.Company.Department,
		Title:      e.Company.Title,
		Role:       e.Role,
		Username:   e.Username,
		City:       e.Address.City,
		State:      e.Address.State,
	}
}

// BuildEmployee combines form fields with either the existing record's values
// (edit) or the documented fallbacks (add). The returned id is existing.ID, or
// zero when existing is nil; the store assigns ids on insert.
func BuildEmployee(form EmployeeForm, existing *Employee, now time.Time) Employee {
	var prev Employee
	if existing != nil {
		prev = *existing
	}

	e := Employee{
		ID:         prev.ID,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		MaidenName: prev.MaidenName,
		Age:        form.Age,
		Gender:     form.Gender,
		Email:      form.Email,
		Phone:      form.Phone,
		Username:   form.Username,
		Password:   orString(prev.Password, DefaultPassword),
		BirthDate:  orString(prev.BirthDate, now.Format(BirthDateLayout)),
		Image:      orString(prev.Image, DefaultImage),
		BloodGroup: orString(prev.BloodGroup, DefaultBloodGroup),
		Height:     orFloat(prev.Height, DefaultHeight),
		Weight:     orFloat(prev.Weight, DefaultWeight),
		EyeColor:   orString(prev.EyeColor, DefaultEyeColor),
		IP:         orString(prev.IP, DefaultIP),
		Address: Address{
			Address:    orString(prev.Address.Address, DefaultStreet),
			City:       form.City,
			State:      form.State,
			StateCode:  orString(prev.Address.StateCode, DefaultStateCode),
			PostalCode: orString(prev.Address.PostalCode, DefaultPostalCode),
			Country:    orString(prev.Address.Country, DefaultCountry),
		},
		MacAddress: orString(prev.MacAddress, DefaultMacAddress),
		University: orString(prev.University, DefaultUniversity),
		Company: Company{
			Department: form.Department,
			Name:       orString(prev.Company.Name, DefaultCompanyName),
			Title:      form.Title,
		},
		EIN:       orString(prev.EIN, DefaultEIN),
		SSN:       orString(prev.SSN, DefaultSSN),
		UserAgent: orString(prev.UserAgent, DefaultUserAgent),
		Role:      form.Role,
	}

	if existing != nil {
		e.Hair = prev.Hair
		e.Address.Coordinates = prev.Address.Coordinates
		e.Bank = prev.Bank
		e.Company.Address = prev.Company.Address
		e.Crypto = prev.Crypto
		return e
	}

	e.Hair = Hair{Color: DefaultHairColor, Type: DefaultHairType}
	e.Bank = Bank{
		CardExpire: DefaultCardExpire,
		CardNumber: DefaultCardNumber,
		CardType:   DefaultCardType,
		Currency:   DefaultCurrency,
		IBAN:       DefaultIBAN,
	}
	e.Company.Address = Address{
		Address:    DefaultCompanyStreet,
		City:       form.City,
		State:      form.State,
		StateCode:  DefaultStateCode,
		PostalCode: DefaultPostalCode,
		Country:    DefaultCountry,
	}
	e.Crypto = Crypto{
		Coin:    DefaultCryptoCoin,
		Wallet:  DefaultCryptoWallet,
		Network: DefaultCryptoNetwork,
	}
	return e
}

func orString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orFloat(value, fallback float64) float64 {
	if value != 0 {
		return value
	}
	return fallback
}
