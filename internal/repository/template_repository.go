package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TemplateRepository stores the achievement catalog.
type TemplateRepository struct {
	collection *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{
		collection: db.Collection("achievement_templates"),
	}
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, template *models.AchievementTemplate) (*models.AchievementTemplate, error) {
	template.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, template)
	if err != nil {
		return nil, mapError("achievement template", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, &apperror.Error{Kind: apperror.Internal, Msg: "failed to cast inserted ID"}
	}
	template.ID = insertedID

	return template, nil
}

// InsertTemplates bulk-inserts catalog entries.
func (r *TemplateRepository) InsertTemplates(ctx context.Context, templates []models.AchievementTemplate) error {
	docs := make([]interface{}, 0, len(templates))
	now := time.Now()
	for i := range templates {
		templates[i].CreatedAt = now
		docs = append(docs, templates[i])
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		logger.Log.WithError(err).Error("Failed to seed achievement templates")
		return mapError("achievement template", err)
	}
	return nil
}

func (r *TemplateRepository) CountTemplates(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, mapError("achievement templates", err)
	}
	return n, nil
}

func (r *TemplateRepository) GetAllTemplates(ctx context.Context) ([]models.AchievementTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "target", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapError("achievement templates", err)
	}
	defer cursor.Close(ctx)

	templates := []models.AchievementTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, mapError("achievement templates", err)
	}
	return templates, nil
}

func (r *TemplateRepository) GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.AchievementTemplate, error) {
	var template models.AchievementTemplate

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		return nil, mapError("achievement template", err)
	}

	return &template, nil
}

func (r *TemplateRepository) UpdateTemplate(ctx context.Context, template *models.AchievementTemplate) error {
	update := bson.M{"$set": bson.M{
		"title":       template.Title,
		"description": template.Description,
		"category":    template.Category,
		"icon":        template.Icon,
		"target":      template.Target,
		"xp_reward":   template.XPReward,
		"badge_title": template.BadgeTitle,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": template.ID}, update)
	if err != nil {
		return mapError("achievement template", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFoundf("achievement template not found")
	}
	return nil
}

func (r *TemplateRepository) DeleteTemplate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError("achievement template", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFoundf("achievement template not found")
	}
	return nil
}
