package domain

// User is the minimal identity record needed to stamp audit fields and issue
// tokens. Authorization beyond "a caller identity exists" lives outside this
// service.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
