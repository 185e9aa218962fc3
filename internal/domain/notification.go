package domain

type NotificationStatus string

const (
	NotificationSuccess NotificationStatus = "success"
	NotificationDanger  NotificationStatus = "danger"
)

type Notification struct {
	Title       string             `json:"title"`
	Body        string             `json:"body,omitempty"`
	Status      NotificationStatus `json:"status"`
	ComponentID ComponentID        `json:"component_id,omitempty"`
}
