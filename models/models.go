package models

import "time"

// Employee mirrors one on-chain registry entry for display. The
// ledger is authoritative; amounts are decimal strings in the token's
// smallest unit.
type Employee struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	FullName      string    `json:"full_name"`
	WalletAddress string    `gorm:"unique;not null" json:"wallet_address"`
	Salary        string    `gorm:"not null" json:"salary"`
	Bonus         string    `gorm:"not null;default:'0'" json:"bonus"`
	Penalty       string    `gorm:"not null;default:'0'" json:"penalty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// Transaction is the display log of disbursement runs: when, how much
// in total, and a reference hash of the run.
type Transaction struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Amount    string    `gorm:"not null" json:"amount"`
	Hash      string    `gorm:"not null" json:"hash"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
