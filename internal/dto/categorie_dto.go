package dto

const MissingCategorieParams = `Missing required parameter "nom"`

type CategorieRequest struct {
	Nom string `json:"nom" validate:"required,max=100"`
}
