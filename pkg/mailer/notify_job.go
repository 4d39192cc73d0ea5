package mailer

// NotifyJob is the JSON payload put on the RabbitMQ queue when a participant
// joins an event. HTML is optional; Text is the fallback body.
type NotifyJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}
