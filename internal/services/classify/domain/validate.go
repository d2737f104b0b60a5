package domain

import (
	"snipjar/internal/core/category"
	"snipjar/internal/platform/net/http/bind"
)

func init() {
	// category fields arrive as category.Category; this rejects the zero value and stray strings
	_ = bind.RegisterValidation("category", func(fl bind.FieldLevel) bool {
		return category.Category(fl.Field().String()).Valid()
	}, "must be a known category")
}
