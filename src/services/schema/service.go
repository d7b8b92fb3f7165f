package schema

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSchemaNotFound means a template, page, section or question the caller
// depends on does not exist. Fatal for the current request only.
var ErrSchemaNotFound = errors.New("schema not found")

const graphCacheTTL = 5 * time.Minute

// TemplateGraph is the fully resolved questionnaire: pages ascending, each
// with its sections ascending, each with questions and their dependencies.
type TemplateGraph struct {
	Template models.Template `json:"template"`
	Pages    []PageNode      `json:"pages"`
}

type PageNode struct {
	Page     models.Page   `json:"page"`
	Sections []SectionNode `json:"sections"`
}

type SectionNode struct {
	Section   models.Section    `json:"section"`
	Questions []models.Question `json:"questions"`
}

// AllSections flattens the schema sections across all pages.
func (g *TemplateGraph) AllSections() []models.Section {
	var out []models.Section
	for _, p := range g.Pages {
		for _, s := range p.Sections {
			out = append(out, s.Section)
		}
	}
	return out
}

// AllQuestions flattens every question across all pages and sections.
func (g *TemplateGraph) AllQuestions() []models.Question {
	var out []models.Question
	for _, p := range g.Pages {
		for _, s := range p.Sections {
			out = append(out, s.Questions...)
		}
	}
	return out
}

// LoadTemplate resolves the full graph for a template, served from the Redis
// cache when possible.
func LoadTemplate(ctx context.Context, templateID primitive.ObjectID) (*TemplateGraph, error) {
	if g := cachedGraph(templateID); g != nil {
		return g, nil
	}

	var tmpl models.Template
	err := DB.TemplateCollection.FindOne(ctx, bson.M{"_id": templateID}).Decode(&tmpl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSchemaNotFound
		}
		return nil, err
	}

	graph := &TemplateGraph{Template: tmpl}

	pageOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := DB.PageCollection.Find(ctx, bson.M{"templateId": templateID}, pageOpts)
	if err != nil {
		return nil, err
	}
	var pages []models.Page
	if err = cur.All(ctx, &pages); err != nil {
		return nil, err
	}

	for _, page := range pages {
		node := PageNode{Page: page}

		secOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
		secCur, err := DB.SectionCollection.Find(ctx,
			bson.M{"pageId": page.ID, "modelType": models.SectionModelPage}, secOpts)
		if err != nil {
			return nil, err
		}
		var sections []models.Section
		if err = secCur.All(ctx, &sections); err != nil {
			return nil, err
		}

		for _, section := range sections {
			questions, err := loadSectionQuestions(ctx, section.ID)
			if err != nil {
				return nil, err
			}
			node.Sections = append(node.Sections, SectionNode{Section: section, Questions: questions})
		}
		graph.Pages = append(graph.Pages, node)
	}

	cacheGraph(templateID, graph)
	return graph, nil
}

// ResolveBookingTemplate recovers "which schema am I" for a booking by
// following origSectionId of the first booking section up to its schema
// section, then the owning page, then the template. Bookings never store a
// template id directly, so this chain is the only route back.
func ResolveBookingTemplate(ctx context.Context, bookingSections []models.Section) (*TemplateGraph, error) {
	if len(bookingSections) == 0 {
		return nil, ErrSchemaNotFound
	}
	origID := bookingSections[0].OrigSectionID
	if origID.IsZero() {
		return nil, ErrSchemaNotFound
	}

	var schemaSection models.Section
	err := DB.SectionCollection.FindOne(ctx, bson.M{"_id": origID}).Decode(&schemaSection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSchemaNotFound
		}
		return nil, err
	}

	var page models.Page
	err = DB.PageCollection.FindOne(ctx, bson.M{"_id": schemaSection.PageID}).Decode(&page)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSchemaNotFound
		}
		return nil, err
	}

	return LoadTemplate(ctx, page.TemplateID)
}

func loadSectionQuestions(ctx context.Context, sectionID primitive.ObjectID) ([]models.Question, error) {
	qOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := DB.QuestionCollection.Find(ctx, bson.M{"sectionId": sectionID}, qOpts)
	if err != nil {
		return nil, err
	}
	var questions []models.Question
	if err = cur.All(ctx, &questions); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]primitive.ObjectID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	depCur, err := DB.QuestionDependencyCollection.Find(ctx, bson.M{"questionId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var deps []models.QuestionDependency
	if err = depCur.All(ctx, &deps); err != nil {
		return nil, err
	}

	byQuestion := map[primitive.ObjectID][]models.QuestionDependency{}
	for _, d := range deps {
		byQuestion[d.QuestionID] = append(byQuestion[d.QuestionID], d)
	}
	for i := range questions {
		questions[i].Dependencies = byQuestion[questions[i].ID]
	}
	return questions, nil
}

// --- Redis graph cache ---

func graphCacheKey(templateID primitive.ObjectID) string {
	return "schema:graph:" + templateID.Hex()
}

func cachedGraph(templateID primitive.ObjectID) *TemplateGraph {
	if DB.RedisClient == nil {
		return nil
	}
	raw, err := DB.RedisClient.Get(DB.RedisCtx, graphCacheKey(templateID)).Result()
	if err != nil {
		return nil
	}
	var graph TemplateGraph
	if err := json.Unmarshal([]byte(raw), &graph); err != nil {
		return nil
	}
	return &graph
}

func cacheGraph(templateID primitive.ObjectID, graph *TemplateGraph) {
	if DB.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(graph)
	if err != nil {
		return
	}
	if err := DB.RedisClient.Set(DB.RedisCtx, graphCacheKey(templateID), raw, graphCacheTTL).Err(); err != nil {
		log.Printf("[schema] graph cache set failed: %v", err)
	}
}

// InvalidateGraph drops the cached graph after a schema change.
func InvalidateGraph(templateID primitive.ObjectID) {
	if DB.RedisClient == nil {
		return
	}
	DB.RedisClient.Del(DB.RedisCtx, graphCacheKey(templateID))
}
