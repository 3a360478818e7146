package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worksafe/internal/model"
)

func strPtr(s string) *string { return &s }

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "worksafe"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	tenantID := "tenant_" + uuid.New().String()[:8]

	survey := model.Survey{
		TenantID: tenantID,
		Title:    "Annual psychosocial work environment survey",
		Category: model.SurveyCategoryPsychosocial,
		Fields: []model.SurveyField{
			{ID: "f1", Label: "How manageable is your workload in a normal week?", Type: model.FieldTypeScale},
			{ID: "f2", Label: "How much time pressure do you feel on deadlines?", Type: model.FieldTypeScale},
			{ID: "f3", Label: "How well does your manager support you?", Type: model.FieldTypeScale},
			{ID: "f4", Label: "How often do you receive useful feedback?", Type: model.FieldTypeScale},
			{ID: "f5", Label: "How would you rate the atmosphere in your team?", Type: model.FieldTypeScale},
			{ID: "f6", Label: "How included do you feel by your colleagues?", Type: model.FieldTypeScale},
			{ID: "f7", Label: "How much influence do you have over your own work?", Type: model.FieldTypeScale},
			{ID: "f8", Label: "How satisfied are you with your competence development?", Type: model.FieldTypeScale},
			{ID: "f9", Label: "How well does your work-life balance hold up?", Type: model.FieldTypeScale},
			{ID: "f10", Label: "Have you experienced bullying at work?", Type: model.FieldTypeFrequency},
			{ID: "f11", Label: "Have you experienced harassment at work?", Type: model.FieldTypeFrequency},
			{ID: "f12", Label: "Have you felt improper pressure to cut corners?", Type: model.FieldTypeFrequency},
			{ID: "f13", Label: "Do you have an unresolved conflict with anyone at work?", Type: model.FieldTypeFrequency},
			{ID: "f14", Label: "Anything else you want to share?", Type: model.FieldTypeText},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	surveyRes, err := db.Collection("surveys").InsertOne(ctx, survey)
	if err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}
	if oid, ok := surveyRes.InsertedID.(primitive.ObjectID); ok {
		survey.ID = oid.Hex()
	}

	members := []model.Member{
		{
			TenantID: tenantID,
			Name:     "Vera Lindt",
			Email:    "vera.lindt@example.com",
			Roles:    []string{model.RoleSafetyOfficer},
		},
		{
			TenantID: tenantID,
			Name:     "Occupational Health North",
			Email:    "contact@ohn.example.com",
			Roles:    []string{model.RoleHealthProvider},
		},
		{
			TenantID: tenantID,
			Name:     "Jon Berge",
			Email:    "jon.berge@example.com",
			Roles:    []string{model.RoleAdministrator},
		},
	}
	for i := range members {
		members[i].CreatedAt = time.Now()
		if _, err := db.Collection("members").InsertOne(ctx, members[i]); err != nil {
			log.Fatalf("Failed to insert member: %v", err)
		}
	}

	// One healthy and one strained submission for the current year
	submissions := []model.Submission{
		{
			TenantID: tenantID,
			SurveyID: survey.ID,
			Status:   model.SubmissionSubmitted,
			Values: []model.ResponseValue{
				{FieldID: "f1", Value: strPtr("4")},
				{FieldID: "f2", Value: strPtr("4")},
				{FieldID: "f3", Value: strPtr("5")},
				{FieldID: "f4", Value: strPtr("4")},
				{FieldID: "f5", Value: strPtr("5")},
				{FieldID: "f6", Value: strPtr("5")},
				{FieldID: "f7", Value: strPtr("4")},
				{FieldID: "f8", Value: strPtr("4")},
				{FieldID: "f9", Value: strPtr("4")},
				{FieldID: "f10", Value: strPtr("Never")},
				{FieldID: "f11", Value: strPtr("Never")},
				{FieldID: "f12", Value: strPtr("Never")},
				{FieldID: "f13", Value: strPtr("Never")},
			},
			SubmittedAt: time.Now().AddDate(0, -2, 0),
		},
		{
			TenantID: tenantID,
			SurveyID: survey.ID,
			Status:   model.SubmissionSubmitted,
			Values: []model.ResponseValue{
				{FieldID: "f1", Value: strPtr("2")},
				{FieldID: "f2", Value: strPtr("1")},
				{FieldID: "f3", Value: strPtr("2")},
				{FieldID: "f4", Value: strPtr("2")},
				{FieldID: "f5", Value: strPtr("3")},
				{FieldID: "f6", Value: strPtr("3")},
				{FieldID: "f7", Value: strPtr("2")},
				{FieldID: "f8", Value: strPtr("3")},
				{FieldID: "f9", Value: strPtr("2")},
				{FieldID: "f10", Value: strPtr("Sometimes")},
				{FieldID: "f11", Value: strPtr("Never")},
				{FieldID: "f12", Value: strPtr("Rarely")},
				{FieldID: "f13", Value: strPtr("Never")},
			},
			SubmittedAt: time.Now().AddDate(0, -1, 0),
		},
	}
	for i := range submissions {
		res, err := db.Collection("submissions").InsertOne(ctx, submissions[i])
		if err != nil {
			log.Fatalf("Failed to insert submission: %v", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			submissions[i].ID = oid.Hex()
		}
	}

	fmt.Printf("Seeded tenant %s with survey %q, %d members and %d submissions\n",
		tenantID, survey.Title, len(members), len(submissions))
	fmt.Printf("Analyze with: POST /v1/submissions/%s/analyze\n", submissions[1].ID)
}
