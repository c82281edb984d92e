package models

import "time"

// ChatTurn is one message/reply exchange. Turns are append-only and kept
// for audit; there is no update or delete path.
type ChatTurn struct {
	ID        string    `json:"id" badgerhold:"key"`
	Username  string    `json:"username" badgerhold:"index"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a registered account with its survey blob. The survey text is
// the free-form profile fed to the chat responder. PasswordHash is a
// bcrypt hash; credential checking itself lives outside this core.
type User struct {
	ID           string    `json:"id" badgerhold:"key"`
	Username     string    `json:"username" badgerhold:"unique"`
	PasswordHash string    `json:"-"`
	Survey       string    `json:"survey"`
	CreatedAt    time.Time `json:"created_at"`
}
