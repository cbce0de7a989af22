package delivery

import "time"

// RefPrefix is the reference code prefix for delivery options ("DO1").
const RefPrefix = "DO"

// DeliveryOption is a delivery method offered to customers, with its fee.
type DeliveryOption struct {
	Ref         string
	Name        string
	Description string
	Cost        float64
	Created     time.Time
}
