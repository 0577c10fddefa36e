package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Search string
	Status models.ProjectStatus
	Page   Page
}

// CreateProject allocates the PRJ code, recomputes derived fields and inserts.
func (r *Repository) CreateProject(ctx context.Context, p *models.Project) error {
	code, err := r.NextCode(ctx, collProjects, prefixProject)
	if err != nil {
		return err
	}
	p.ProjectID = code

	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Status == "" {
		p.Status = models.ProjectPlanned
	}
	p.Recalculate()

	res, err := r.db.Collection(collProjects).InsertOne(ctx, p)
	if err != nil {
		return wrapErr(err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetProject fetches a project by id.
func (r *Repository) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := r.db.Collection(collProjects).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

// ListProjects returns a filtered page of projects, newest first.
func (r *Repository) ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := searchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"location": rx},
			bson.M{"project_id": rx},
		}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	projects := []models.Project{}
	total, err := r.findPage(ctx, collProjects, filter, bson.D{{Key: "created_at", Value: -1}}, f.Page, &projects)
	return projects, total, err
}

// UpdateProject replaces the mutable fields of an existing project, keeping
// the generated code and creation time, and recomputes derived fields.
func (r *Repository) UpdateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC()
	p.Recalculate()

	res, err := r.db.Collection(collProjects).ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project by id.
func (r *Repository) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.Collection(collProjects).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
