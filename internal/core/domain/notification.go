package domain

import "time"

// NotificationType names the domain event a notification was emitted for.
type NotificationType string

const (
	NotifyNewSale         NotificationType = "new_sale"
	NotifyNewPurchase     NotificationType = "new_purchase"
	NotifyPaymentReceived NotificationType = "payment_received"
	NotifyPaymentMade     NotificationType = "payment_made"
	NotifyExpenseRecorded NotificationType = "expense_recorded"
	NotifyLowStock        NotificationType = "low_stock"
	NotifyOverduePayment  NotificationType = "overdue_payment"
)

// Notification is an advisory record consumed by client polling. It is not a
// financial record: delivery is at-least-once and rows may be deleted by the user.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	ShopID         string           `json:"shopID"`         // FK -> shops.shop_id (Not Null)
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	IsRead         bool             `json:"isRead"`
	ActionURL      string           `json:"actionURL,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// Event is the input to the notification dispatcher.
type Event struct {
	ShopID    string
	Type      NotificationType
	Title     string
	Message   string
	ActionURL string
}
