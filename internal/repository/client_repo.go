package repository

import (
	"context"

	"github.com/EliasMeh/ExamenBDD/internal/model"

	"gorm.io/gorm"
)

type ClientRepository interface {
	List(ctx context.Context) ([]model.Client, error)
	FindByID(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id int64) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) List(ctx context.Context) ([]model.Client, error) {
	var list []model.Client
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *clientRepo) FindByID(ctx context.Context, id int64) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return affected(r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"nomclient":        c.NomClient,
			"prenomclient":     c.PrenomClient,
			"emailclient":      c.EmailClient,
			"adresseclient":    c.AdresseClient,
			"codepostalclient": c.CodePostalClient,
		}))
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Client{}, id))
}
