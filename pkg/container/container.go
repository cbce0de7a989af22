package container

import "time"

// RefPrefix is the reference code prefix for food containers ("FC2").
const RefPrefix = "FC"

// FoodContainer is a packaging option with its per-unit cost.
type FoodContainer struct {
	Ref         string
	Name        string
	Description string
	Cost        float64
	Created     time.Time
}
