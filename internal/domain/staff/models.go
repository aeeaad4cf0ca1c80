package staff

type Employee struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	MaidenName string  `json:"maidenName"`
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	BirthDate  string  `json:"birthDate"`
	Image      string  `json:"image"`
	BloodGroup string  `json:"bloodGroup"`
	Height     float64 `json:"height"`
	Weight     float64 `json:"weight"`
	EyeColor   string  `json:"eyeColor"`
	Hair       Hair    `json:"hair"`
	IP         string  `json:"ip"`
	Address    Address `json:"address"`
	MacAddress string  `json:"macAddress"`
	University string  `json:"university"`
	Bank       Bank    `json:"bank"`
	Company    Company `json:"company"`
	EIN        string  `json:"ein"`
	SSN        string  `json:"ssn"`
	UserAgent  string  `json:"userAgent"`
	Crypto     Crypto  `json:"crypto"`
	Role       string  `json:"role"`
}

type Hair struct {
	Color string `json:"color"`
	Type  string `json:"type"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Address struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	StateCode   string      `json:"stateCode"`
	PostalCode  string      `json:"postalCode"`
	Coordinates Coordinates `json:"coordinates"`
	Country     string      `json:"country"`
}

type Bank struct {
	CardExpire string `json:"cardExpire"`
	CardNumber string `json:"cardNumber"`
	CardType   string `json:"cardType"`
	Currency   string `json:"currency"`
	IBAN       string `json:"iban"`
}

type Company struct {
	Department string  `json:"department"`
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Address    Address `json:"address"`
}

type Crypto struct {
	Coin    string `json:"coin"`
	Wallet  string `json:"wallet"`
	Network string `json:"network"`
}

// EmployeeForm holds the fields collected by the add/edit employee form.
type EmployeeForm struct {
	FirstName  string `json:"firstName" validate:"required,min=2"`
	LastName   string `json:"lastName" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,personemail"`
	Phone      string `json:"phone" validate:"required,phone"`
	Age        int    `json:"age" validate:"required,min=18,max=100"`
	Gender     string `json:"gender" validate:"required"`
	Department string `json:"department" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=admin user"`
	Username   string `json:"username" validate:"required,min=3"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
}
