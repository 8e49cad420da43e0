// File: cmd/service/main.go
// @title        Users Table API
// @version      1.0
// @description  使用者清單排序檢視的 JSON API
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"log"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
