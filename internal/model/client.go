package model

// Client places orders.
type Client struct {
	ID               int64  `gorm:"primaryKey" json:"id"`
	NomClient        string `gorm:"column:nomclient;not null" json:"nomclient"`
	PrenomClient     string `gorm:"column:prenomclient;not null" json:"prenomclient"`
	EmailClient      string `gorm:"column:emailclient;not null" json:"emailclient"`
	AdresseClient    string `gorm:"column:adresseclient;not null" json:"adresseclient"`
	CodePostalClient string `gorm:"column:codepostalclient;not null" json:"codepostalclient"`
}

func (Client) TableName() string { return "clients" }
