package ingredient

import (
	"time"

	"github.com/YellowDYe/HolaOrdenes1-sub000/pkg/nutrition"
)

// RefPrefix is the reference code prefix for catalog ingredients ("IG7").
const RefPrefix = "IG"

type Ingredient struct {
	Ref  string
	Name string
	// Facts carries the nutritional values per 100g and the cost per kilo.
	Facts   nutrition.Facts
	Created time.Time
}
