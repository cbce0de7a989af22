package cookingstep

import "time"

// RefPrefix is the reference code prefix for cooking steps ("CS4").
const RefPrefix = "CS"

// CookingStep is a reusable preparation instruction. Recipes reference steps
// by Ref in cooking order.
type CookingStep struct {
	Ref         string
	Name        string
	Description string
	Created     time.Time
}
