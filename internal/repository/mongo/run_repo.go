package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
)

const runCollectionName = "runs"

// mongoRunRepository implements repository.RunRepository
type mongoRunRepository struct {
	collection *mongo.Collection
}

// NewMongoRunRepository creates a new Run repository.
func NewMongoRunRepository(db *mongo.Database) repository.RunRepository {
	return &mongoRunRepository{
		collection: db.Collection(runCollectionName),
	}
}

// Create inserts a new run. A second run with the same external id in the
// same plan is rejected with repository.ErrDuplicate.
func (r *mongoRunRepository) Create(ctx context.Context, run *domain.Run) (string, error) {
	if run.PlanID == "" {
		return "", errors.New("run requires planId")
	}
	run.ID = uuid.NewString()
	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return run.ID, nil
}

func (r *mongoRunRepository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRunRepository) GetByExternalID(ctx context.Context, planID, externalID string) (*domain.Run, error) {
	return r.findOne(ctx, bson.M{"planId": planID, "externalId": externalID})
}

func (r *mongoRunRepository) findOne(ctx context.Context, filter bson.M) (*domain.Run, error) {
	var run domain.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// GetByPlanID retrieves all runs logged against a plan, oldest first.
func (r *mongoRunRepository) GetByPlanID(ctx context.Context, planID string) ([]domain.Run, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []domain.Run
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *mongoRunRepository) Update(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		return errors.New("run ID is required for update")
	}
	run.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"distance":  run.Distance,
		"pace":      run.Pace,
		"date":      run.Date,
		"notes":     run.Notes,
		"updatedAt": run.UpdatedAt,
	}
	updateDoc := bson.M{"$set": set}
	if run.WorkoutID != nil {
		set["workoutId"] = *run.WorkoutID
	} else {
		updateDoc["$unset"] = bson.M{"workoutId": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": run.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRunRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoRunRepository) DeleteByPlanID(ctx context.Context, planID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureRunIndexes creates necessary indexes. Call during startup.
func EnsureRunIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			// One copy of each synced activity per plan.
			Keys: bson.D{{Key: "planId", Value: 1}, {Key: "externalId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"externalId": bson.M{"$exists": true}}),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
