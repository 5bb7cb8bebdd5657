package services

import (
	"fmt"
	"log"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
)

// Mailer is the transport for owner notifications.
type Mailer interface {
	Send(to, subject, body string) error
}

// NotificationService sends best-effort mails to the owner inbox.
// Delivery never blocks or fails the operation that triggered it.
type NotificationService struct {
	mailer Mailer
	to     string
}

func NewNotificationService(mailer Mailer, to string) *NotificationService {
	return &NotificationService{mailer: mailer, to: to}
}

func (s *NotificationService) OrderSubmitted(order *models.Order) {
	subject := fmt.Sprintf("Order #%d awaiting approval", order.ID)
	body := fmt.Sprintf(
		"Order #%d for %s was completed and is awaiting discount approval.\nNet amount: %s\nDiscount requested: %s %s",
		order.ID, order.Customer.Name,
		order.NetAmount.StringFixed(2),
		order.Discount.Value.StringFixed(2), order.Discount.Kind,
	)
	s.deliver(subject, body)
}

func (s *NotificationService) DiscountDecided(order *models.Order, decision string) {
	subject := fmt.Sprintf("Order #%d discount %s", order.ID, decision)
	body := fmt.Sprintf(
		"The discount on order #%d for %s was %s.\nNet amount: %s\nOutstanding charged to technician: %s",
		order.ID, order.Customer.Name, decision,
		order.NetAmount.StringFixed(2),
		order.OutstandingAmount.StringFixed(2),
	)
	s.deliver(subject, body)
}

func (s *NotificationService) deliver(subject, body string) {
	go func() {
		if err := s.mailer.Send(s.to, subject, body); err != nil {
			log.Printf("Failed to send notification %q: %v", subject, err)
		}
	}()
}
