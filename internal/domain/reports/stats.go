package reports

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"staffdesk/internal/domain/staff"
)

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type GenderCounts struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

type RoleCounts struct {
	Admin int `json:"admin"`
	User  int `json:"user"`
}

// Dashboard is the summary shown on the landing page. AverageAge is formatted to
// one decimal place and nil when there are no records.
type Dashboard struct {
	TotalEmployees  int               `json:"totalEmployees"`
	Roles           RoleCounts        `json:"roles"`
	DepartmentCount int               `json:"departmentCount"`
	Departments     []DepartmentCount `json:"departments"`
	Genders         GenderCounts      `json:"genders"`
	AverageAge      *string           `json:"averageAge"`
}

func CountByRole(records []staff.Employee) map[string]int {
	counts := make(map[string]int)
	for _, e := range records {
		counts[e.Role]++
	}
	return counts
}

func CountByDepartment(records []staff.Employee) map[string]int {
	counts := make(map[string]int)
	for _, e := range records {
		counts[e.Company.Department]++
	}
	return counts
}

// DepartmentBreakdown counts records per department, ordered by first appearance.
func DepartmentBreakdown(records []staff.Employee) []DepartmentCount {
	index := make(map[string]int)
	out := make([]DepartmentCount, 0)
	for _, e := range records {
		dept := e.Company.Department
		i, ok := index[dept]
		if !ok {
			i = len(out)
			index[dept] = i
			out = append(out, DepartmentCount{Department: dept})
		}
		out[i].Count++
	}
	return out
}

// CountByGender buckets exact "male" and "female" values; anything else is left out.
func CountByGender(records []staff.Employee) GenderCounts {
	var counts GenderCounts
	for _, e := range records {
		switch e.Gender {
		case staff.GenderMale:
			counts.Male++
		case staff.GenderFemale:
			counts.Female++
		}
	}
	return counts
}

// AverageAge is the arithmetic mean of ages, NaN for no records.
func AverageAge(records []staff.Employee) float64 {
	if len(records) == 0 {
		return math.NaN()
	}
	sum := 0
	for _, e := range records {
		sum += e.Age
	}
	return float64(sum) / float64(len(records))
}

func BuildDashboard(records []staff.Employee) Dashboard {
	roles := CountByRole(records)
	departments := DepartmentBreakdown(records)

	d := Dashboard{
		TotalEmployees:  len(records),
		Roles:           RoleCounts{Admin: roles[staff.RoleAdmin], User: roles[staff.RoleUser]},
		DepartmentCount: len(departments),
		Departments:     departments,
		Genders:         CountByGender(records),
	}
	if avg := AverageAge(records); !math.IsNaN(avg) {
		formatted := FormatAge(avg)
		d.AverageAge = &formatted
	}
	return d
}

// FormatAge renders avg with one decimal place, rounding the exact binary value
// half away from zero. 35.05 is stored just below 35.05 and renders as "35.0".
func FormatAge(avg float64) string {
	// 1074 fractional digits hold any float64 exactly.
	exact, err := decimal.NewFromString(new(big.Float).SetFloat64(avg).Text('f', 1074))
	if err != nil {
		return decimal.NewFromFloat(avg).StringFixed(1)
	}
	return exact.StringFixed(1)
}
