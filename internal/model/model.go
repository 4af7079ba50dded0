package model

// Lead is one submitted quote/service request. Rows are created by the intake
// endpoints, read and deleted by the admin endpoints, and never updated.
type Lead struct {
	Id        int64  `json:"id"         db:"id"`
	CreatedAt string `json:"created_at" db:"created_at"`
	Name      string `json:"name"       db:"name"`
	Email     string `json:"email"      db:"email"`
	Phone     string `json:"phone"      db:"phone"`
	Service   string `json:"service"    db:"service"`
	Message   string `json:"message"    db:"message"`
	Source    string `json:"source"     db:"source"`
}

// Submission is the inbound payload of the intake endpoints. Name, Email,
// Service and Message are required; Phone and Source are optional.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
	Source  string `json:"source"`
}
