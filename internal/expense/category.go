package expense

import "fmt"

// Category is the closed set of buckets an expense can belong to.
type Category string

const (
	CategoryGroceries      Category = "groceries"
	CategoryDebts          Category = "debts"
	CategoryUtilities      Category = "utilities"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryHealthcare     Category = "healthcare"
	CategoryOther          Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryGroceries,
	CategoryDebts,
	CategoryUtilities,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryOther,
}

var labels = map[Category]string{
	CategoryGroceries:      "Groceries",
	CategoryDebts:          "Debts",
	CategoryUtilities:      "Utilities",
	CategoryTransportation: "Transportation",
	CategoryEntertainment:  "Entertainment",
	CategoryHealthcare:     "Healthcare",
	CategoryOther:          "Other",
}

// ParseCategory returns the category named s or a ValidationError.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
	}

	return c, nil
}

func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label is the human readable name, e.g. "Groceries".
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}

	return string(c)
}

func (c Category) String() string {
	return string(c)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText rejects anything outside the fixed set.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
