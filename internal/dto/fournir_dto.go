package dto

const (
	MissingFournirParams       = `Missing required parameters "idproduit" and/or "idfournisseur"`
	MissingFournirUpdateParams = `Missing required parameters "newIdproduit" and/or "newIdfournisseur"`
)

type FournirRequest struct {
	IDProduit     int64 `json:"idproduit"     validate:"required,gt=0"`
	IDFournisseur int64 `json:"idfournisseur" validate:"required,gt=0"`
}

// FournirUpdateRequest re-keys an existing link identified by the path params.
type FournirUpdateRequest struct {
	NewIDProduit     int64 `json:"newIdproduit"     validate:"required,gt=0"`
	NewIDFournisseur int64 `json:"newIdfournisseur" validate:"required,gt=0"`
}
