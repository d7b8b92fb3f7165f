package schema

import (
	"context"
	"fmt"
	"time"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTemplateRequest is the admin payload for a new questionnaire version.
// Dependencies reference their target question by key within the same
// template.
type CreateTemplateRequest struct {
	Name  string              `json:"name" validate:"required"`
	Pages []CreatePageRequest `json:"pages" validate:"required,min=1,dive"`
}

type CreatePageRequest struct {
	Order    int                    `json:"order"`
	Sections []CreateSectionRequest `json:"sections" validate:"required,min=1,dive"`
}

type CreateSectionRequest struct {
	Label     string                  `json:"label" validate:"required"`
	Order     int                     `json:"order"`
	Questions []CreateQuestionRequest `json:"questions" validate:"dive"`
}

type CreateQuestionRequest struct {
	Type              models.QuestionType       `json:"type" validate:"required"`
	QuestionText      string                    `json:"questionText" validate:"required"`
	QuestionKey       string                    `json:"questionKey"`
	Required          bool                      `json:"required"`
	SecondBookingOnly bool                      `json:"secondBookingOnly"`
	NdisOnly          bool                      `json:"ndisOnly"`
	Options           []string                  `json:"options"`
	Dependencies      []CreateDependencyRequest `json:"dependencies" validate:"dive"`
}

type CreateDependencyRequest struct {
	DependsOnKey string `json:"dependsOnKey" validate:"required"`
	Answer       string `json:"answer"`
}

// CreateTemplate persists a whole questionnaire graph. Questions are inserted
// first so dependency edges can resolve their targets by key in a second
// pass.
func CreateTemplate(ctx context.Context, req *CreateTemplateRequest) (*TemplateGraph, error) {
	tmpl := models.Template{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if _, err := DB.TemplateCollection.InsertOne(ctx, tmpl); err != nil {
		return nil, err
	}

	keyToID := map[string]primitive.ObjectID{}
	type pendingDep struct {
		questionID primitive.ObjectID
		dep        CreateDependencyRequest
	}
	var pending []pendingDep

	for pi, pageReq := range req.Pages {
		page := models.Page{
			ID:         primitive.NewObjectID(),
			TemplateID: tmpl.ID,
			Order:      orderOr(pageReq.Order, pi+1),
		}
		if _, err := DB.PageCollection.InsertOne(ctx, page); err != nil {
			return nil, err
		}

		for si, secReq := range pageReq.Sections {
			section := models.Section{
				ID:        primitive.NewObjectID(),
				Label:     secReq.Label,
				Order:     orderOr(secReq.Order, si+1),
				ModelType: models.SectionModelPage,
				PageID:    page.ID,
			}
			if _, err := DB.SectionCollection.InsertOne(ctx, section); err != nil {
				return nil, err
			}

			for qi, qReq := range secReq.Questions {
				question := models.Question{
					ID:                primitive.NewObjectID(),
					SectionID:         section.ID,
					Order:             qi + 1,
					Type:              qReq.Type,
					QuestionText:      qReq.QuestionText,
					QuestionKey:       qReq.QuestionKey,
					Required:          qReq.Required,
					SecondBookingOnly: qReq.SecondBookingOnly,
					NdisOnly:          qReq.NdisOnly,
					Options:           qReq.Options,
				}
				if _, err := DB.QuestionCollection.InsertOne(ctx, question); err != nil {
					return nil, err
				}
				if question.QuestionKey != "" {
					keyToID[question.QuestionKey] = question.ID
				}
				for _, dep := range qReq.Dependencies {
					pending = append(pending, pendingDep{questionID: question.ID, dep: dep})
				}
			}
		}
	}

	for _, p := range pending {
		targetID, ok := keyToID[p.dep.DependsOnKey]
		if !ok {
			return nil, fmt.Errorf("dependency target key %q not found in template", p.dep.DependsOnKey)
		}
		edge := models.QuestionDependency{
			ID:           primitive.NewObjectID(),
			QuestionID:   p.questionID,
			DependencyID: targetID,
			Answer:       p.dep.Answer,
		}
		if _, err := DB.QuestionDependencyCollection.InsertOne(ctx, edge); err != nil {
			return nil, err
		}
	}

	InvalidateGraph(tmpl.ID)
	return LoadTemplate(ctx, tmpl.ID)
}

func orderOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
