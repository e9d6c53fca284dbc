package dto

const MissingFournisseurParams = `Missing required parameters "nom" and/or "codepostal"`

type FournisseurRequest struct {
	Nom        string `json:"nom"        validate:"required,max=100"`
	CodePostal string `json:"codepostal" validate:"required,max=10"`
}
