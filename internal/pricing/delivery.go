package pricing

import (
	"fmt"
	"time"
)

const (
	deliveryStartOffsetDays = 3
	deliveryEndOffsetDays   = 5
	deliveryDateLayout      = "02 Jan"
)

// DeliveryWindow formats the promised delivery range, three to five
// days out from now, e.g. "02 Jan – 05 Jan".
func DeliveryWindow(now time.Time) string {
	start := now.AddDate(0, 0, deliveryStartOffsetDays)
	end := now.AddDate(0, 0, deliveryEndOffsetDays)
	return fmt.Sprintf("%s – %s", start.Format(deliveryDateLayout), end.Format(deliveryDateLayout))
}
