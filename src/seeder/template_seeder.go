package seeder

import (
	"context"
	"log"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/schema"
)

// SeedSampleTemplate creates the standard respite-stay questionnaire for
// local development and testing.
func SeedSampleTemplate(ctx context.Context) error {
	req := &schema.CreateTemplateRequest{
		Name: "Respite Stay Questionnaire",
		Pages: []schema.CreatePageRequest{
			{
				Order: 1,
				Sections: []schema.CreateSectionRequest{
					{
						Label: "Your stay",
						Order: 1,
						Questions: []schema.CreateQuestionRequest{
							{
								Type:         models.RoomSelectionQuestion,
								QuestionText: "Which room(s) would you like to book?",
								QuestionKey:  models.KeyRoomSelection,
								Required:     true,
							},
							{
								Type:         models.DateRangeQuestion,
								QuestionText: "Check In/Out",
								QuestionKey:  models.KeyCheckInOut,
								Required:     true,
							},
							{
								Type:         models.RadioQuestion,
								QuestionText: "Will you be arriving after 6pm?",
								QuestionKey:  models.KeyLateArrival,
								Required:     true,
								Options:      []string{"Yes", "No"},
							},
							{
								Type:         models.TextQuestion,
								QuestionText: "What time do you expect to arrive?",
								QuestionKey:  models.KeyArrivalTime,
								Required:     true,
								Dependencies: []schema.CreateDependencyRequest{
									{DependsOnKey: models.KeyLateArrival, Answer: "Yes"},
								},
							},
						},
					},
					{
						Label: "Who is coming",
						Order: 2,
						Questions: []schema.CreateQuestionRequest{
							{
								Type:         models.NumberQuestion,
								QuestionText: "Number of infants",
								QuestionKey:  models.KeyInfants,
								Required:     true,
							},
							{
								Type:         models.NumberQuestion,
								QuestionText: "Number of children",
								QuestionKey:  models.KeyChildren,
								Required:     true,
							},
							{
								Type:         models.NumberQuestion,
								QuestionText: "Number of adults",
								QuestionKey:  models.KeyAdults,
								Required:     true,
							},
							{
								Type:         models.RadioQuestion,
								QuestionText: "Are you bringing an assistance animal?",
								QuestionKey:  models.KeyAssistanceAnimal,
								Required:     true,
								Options:      []string{"Yes", "No"},
							},
							{
								Type:         models.FileQuestion,
								QuestionText: "Assistance animal certificate",
								QuestionKey:  models.KeyAnimalCertificate,
								Required:     true,
								Dependencies: []schema.CreateDependencyRequest{
									{DependsOnKey: models.KeyAssistanceAnimal, Answer: "Yes"},
								},
							},
						},
					},
				},
			},
			{
				Order: 2,
				Sections: []schema.CreateSectionRequest{
					{
						Label: "Funding",
						Order: 1,
						Questions: []schema.CreateQuestionRequest{
							{
								Type:         models.RadioQuestion,
								QuestionText: "Who is funding your stay?",
								QuestionKey:  models.KeyFundingSource,
								Required:     true,
								Options:      []string{"Self funded", "NDIS plan managed", "NDIA agency managed"},
							},
							{
								Type:         models.TextQuestion,
								QuestionText: "Your support coordinator's email",
								QuestionKey:  models.KeyCoordinatorEmail,
								Required:     true,
								NdisOnly:     true,
							},
							{
								Type:         models.FileQuestion,
								QuestionText: "NDIS approval letter",
								QuestionKey:  models.KeyApprovalLetter,
								Required:     true,
								NdisOnly:     true,
							},
							{
								Type:         models.RadioQuestion,
								QuestionText: "Would you like the full accommodation package?",
								QuestionKey:  models.KeyFullAccommodation,
								Required:     true,
								Options:      []string{"Yes", "No"},
							},
							{
								Type:         models.CardSelectionQuestion,
								QuestionText: "Support package level",
								QuestionKey:  models.KeySupportPackage,
								Required:     false,
								Options:      []string{"Level 1", "Level 2", "Level 3"},
							},
						},
					},
					{
						Label: "Care needs",
						Order: 2,
						Questions: []schema.CreateQuestionRequest{
							{
								Type:         models.FileQuestion,
								QuestionText: "Care plan",
								QuestionKey:  models.KeyCarePlan,
								Required:     false,
							},
							{
								Type:         models.EquipmentQuestion,
								QuestionText: "Equipment needed during your stay",
								Required:     false,
							},
							{
								Type:         models.TextareaQuestion,
								QuestionText: "Anything else we should know?",
								Required:     false,
							},
						},
					},
				},
			},
		},
	}

	graph, err := schema.CreateTemplate(ctx, req)
	if err != nil {
		return err
	}
	log.Printf("✅ Seeded template %s (%s)", graph.Template.Name, graph.Template.ID.Hex())
	return nil
}
