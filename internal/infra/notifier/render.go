package notifier

import (
	"fmt"
	"strings"

	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"
)

func render(topic string, b *queries.BookingView) (Message, error) {
	var subject, intro string
	switch topic {
	case shared.TopicBookingCreated:
		subject = "Your booking has been received"
		intro = "Thank you for your reservation. We have received your booking."
	case shared.TopicBookingCancelled:
		subject = "Your booking has been cancelled"
		intro = "Your booking has been cancelled."
	case shared.TopicBookingStatus:
		subject = fmt.Sprintf("Your booking is now %s", humanStatus(b.Status))
		intro = fmt.Sprintf("The status of your booking changed to %s.", humanStatus(b.Status))
	default:
		return Message{}, fmt.Errorf("unknown notification topic %q", topic)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n%s\n\n", b.UserFullName, intro)
	fmt.Fprintf(&body, "Booking: %s\n", b.ID)
	fmt.Fprintf(&body, "Stay: %s to %s (%d nights)\n", b.CheckIn, b.CheckOut, b.Nights)
	for _, r := range b.Rooms {
		fmt.Fprintf(&body, "  Room %s (%s): %d adults, %d children, %d babies\n",
			r.RoomNumber, r.RoomTypeName, r.Adults, r.Children, r.Babies)
	}
	for _, s := range b.Services {
		fmt.Fprintf(&body, "  %s x%d\n", s.Name, s.Quantity)
	}
	fmt.Fprintf(&body, "Subtotal: %s VND\n", formatVND(b.Subtotal))
	if b.DiscountCode != nil {
		fmt.Fprintf(&body, "Discount (%s): -%s VND\n", *b.DiscountCode, formatVND(b.DiscountAmount))
	}
	fmt.Fprintf(&body, "Total: %s VND\n", formatVND(b.Total))

	return Message{
		To:      b.UserEmail,
		ToName:  b.UserFullName,
		Subject: subject,
		Body:    body.String(),
	}, nil
}

func humanStatus(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

// formatVND groups thousands with dots, e.g. 1.800.000
func formatVND(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var out strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(d)
	}
	return sign + out.String()
}
