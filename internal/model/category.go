package model

import (
	"fmt"
	"strings"
)

// Category classifies a product. The values keep the catalog's
// Portuguese display names, which is also how they travel over the API.
type Category string

const (
	CategoryFrutas   Category = "Frutas"
	CategoryVerduras Category = "Verduras"
	CategoryLegumes  Category = "Legumes"
	CategoryCarnes   Category = "Carnes"
	CategoryOutros   Category = "Outros"
)

var categories = []Category{
	CategoryFrutas,
	CategoryVerduras,
	CategoryLegumes,
	CategoryCarnes,
	CategoryOutros,
}

// ParseCategory matches a category case-insensitively. Unknown input is
// a client error; callers report it as a validation failure, never as a
// server fault.
func ParseCategory(value string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(string(c), strings.TrimSpace(value)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("Categoria inválida: %s", value)
}

func (c Category) String() string {
	return string(c)
}
