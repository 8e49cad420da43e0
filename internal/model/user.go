// File: internal/model/user.go
package model

// User 為遠端使用者清單中的單筆資料，抓取後即不可變
type User struct {
	ID       int     `json:"id" validate:"required,gt=0"`
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required"`
	Website  string  `json:"website" validate:"required,hostname_rfc1123"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

type Address struct {
	Street  string `json:"street,omitempty"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required"`
	Geo     *Geo   `json:"geo,omitempty"`
}

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Company struct {
	Name        string `json:"name" validate:"required"`
	CatchPhrase string `json:"catchPhrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}
