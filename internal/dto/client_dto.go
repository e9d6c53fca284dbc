package dto

const MissingClientParams = `Missing required parameters "nomclient", "prenomclient", "emailclient", "adresseclient" and/or "codepostalclient"`

type ClientRequest struct {
	NomClient        string `json:"nomclient"        validate:"required,max=100"`
	PrenomClient     string `json:"prenomclient"     validate:"required,max=100"`
	EmailClient      string `json:"emailclient"      validate:"required,email"`
	AdresseClient    string `json:"adresseclient"    validate:"required,max=255"`
	CodePostalClient string `json:"codepostalclient" validate:"required,max=10"`
}
