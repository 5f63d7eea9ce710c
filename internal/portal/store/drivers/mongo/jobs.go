package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
)

type jobsRepo struct {
	col *mongo.Collection
}

func (r *jobsRepo) CreateJob(ctx context.Context, j domain.Job) error {
	_, err := r.col.InsertOne(ctx, toJobDoc(j))
	return err
}

func (r *jobsRepo) GetJobByID(ctx context.Context, id string) (domain.Job, error) {
	var doc jobDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return domain.Job{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *jobsRepo) ListJobs(ctx context.Context) ([]domain.Job, error) {
	// ULID ids sort by creation time, so _id descending is newest first.
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []jobDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *jobsRepo) UpdateJob(ctx context.Context, j domain.Job) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": j.ID}, bson.M{"$set": bson.M{
		"title":       j.Title,
		"description": j.Description,
		"location":    j.Location,
		"salaryMin":   j.SalaryMin,
		"salaryMax":   j.SalaryMax,
		"deadline":    j.Deadline,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *jobsRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
