// ABOUTME: Outbound email message handed to the transactional mail collaborator

package domain

// Attachment is a named binary attachment
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailMessage is a fully rendered message
type EmailMessage struct {
	To         string
	Subject    string
	HTML       string
	Text       string
	Attachment *Attachment
}
