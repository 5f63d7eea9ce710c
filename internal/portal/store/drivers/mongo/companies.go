package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
)

type companiesRepo struct {
	col *mongo.Collection
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.col.InsertOne(ctx, toCompanyDoc(c))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	var doc companyDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *companiesRepo) GetCompanyByOwner(ctx context.Context, ownerID string) (domain.Company, error) {
	var doc companyDoc
	err := r.col.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&doc)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *companiesRepo) UpdateCompanyDetails(ctx context.Context, c domain.Company) error {
	return r.setFields(ctx, c.ID, bson.M{
		"name":        c.Name,
		"description": c.Description,
		"website":     c.Website,
		"location":    c.Location,
		"industry":    c.Industry,
		"foundedYear": c.FoundedYear,
	})
}

func (r *companiesRepo) UpdateCompanyStatus(ctx context.Context, id string, status domain.CompanyStatus) error {
	return r.setFields(ctx, id, bson.M{"status": string(status)})
}

func (r *companiesRepo) UpdateCompanyLogo(ctx context.Context, id, logoURL string) error {
	return r.setFields(ctx, id, bson.M{"logo": logoURL})
}

func (r *companiesRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
