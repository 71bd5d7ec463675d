package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webstack-art/FormNest/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "formnest"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	formColl := client.Database(database).Collection("forms")

	hostID := "host_8263b93c"
	form := demoForm(hostID)

	result, err := formColl.InsertOne(ctx, form)
	if err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}

	fmt.Printf("Successfully created form '%s' (%v) for host '%s'\n", form.Title, result.InsertedID, hostID)
}

// demoForm leaves ID empty so the driver assigns the ObjectID; a preset
// string id would be stored as-is and never match the repository's ObjectID
// lookups.
func demoForm(hostID string) model.FormSchema {
	return model.FormSchema{
		OwnerID:     hostID,
		Title:       "Developer Tooling Survey",
		Description: "Tell us how you work so we can improve our editor integrations.",
		Fields: []model.Field{
			{
				ID:       "f_name",
				Type:     model.FieldText,
				Label:    "What is your name?",
				Required: true,
			},
			{
				ID:       "f_email",
				Type:     model.FieldEmail,
				Label:    "Work email",
				Required: true,
			},
			{
				ID:       "f_role",
				Type:     model.FieldRadio,
				Label:    "What best describes your role?",
				Required: true,
				Options: []model.Option{
					{Value: "backend", Label: "Backend engineer"},
					{Value: "frontend", Label: "Frontend engineer"},
					{Value: "other", Label: "Other"},
				},
			},
			{
				ID:    "f_role_other",
				Type:  model.FieldText,
				Label: "Tell us more about your role",
				ConditionalLogic: &model.ConditionalRule{
					ConditionFieldID: "f_role",
					ConditionValue:   "other",
					Action:           model.ActionShow,
				},
			},
			{
				ID:    "f_langs",
				Type:  model.FieldCheckbox,
				Label: "Which languages do you use weekly?",
				Options: []model.Option{
					{Value: "go", Label: "Go"},
					{Value: "ts", Label: "TypeScript"},
					{Value: "py", Label: "Python"},
					{Value: "rust", Label: "Rust"},
				},
			},
			{
				ID:       "f_team_size",
				Type:     model.FieldNumber,
				Label:    "How many people are on your team?",
				Required: true,
			},
			{
				ID:    "f_start_date",
				Type:  model.FieldDate,
				Label: "When did you join your current team?",
			},
			{
				ID:       "f_satisfaction",
				Type:     model.FieldRating,
				Label:    "How satisfied are you with your current tooling?",
				Required: true,
			},
			{
				ID:          "f_feedback",
				Type:        model.FieldTextarea,
				Label:       "Anything else you want to share?",
				Placeholder: "Free-form feedback",
			},
		},
		Theme: model.Theme{
			PrimaryColor:    "#2563eb",
			SecondaryColor:  "#1e40af",
			BackgroundColor: "#f8fafc",
			Font:            "Inter",
		},
		Settings: model.FormSettings{
			MaxSubmissions:        500,
			SubmitButtonText:      "Send answers",
			CustomThankYouMessage: "Thanks, your answers were recorded.",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
