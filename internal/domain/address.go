package domain

// Address is a shipping address. Addresses are immutable once created and
// live only for the duration of a session.
type Address struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Region    string `json:"region"`
	ZipCode   string `json:"zip_code"`
	IsDefault bool   `json:"is_default"`
}
