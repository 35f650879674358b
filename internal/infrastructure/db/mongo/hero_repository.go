package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/ports"
)

const heroCollection = "heroes"

type HeroRepository struct {
	col *mongo.Collection
}

func NewHeroRepository(db *mongo.Database) *HeroRepository {
	return &HeroRepository{col: db.Collection(heroCollection)}
}

// heroDoc is the persisted shape. Field names match the legacy dataset so the
// collection stays compatible with documents imported by the seed tool.
type heroDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"nom"`
	Alias           string             `bson:"alias"`
	Universe        string             `bson:"universe"`
	Powers          []string           `bson:"pouvoirs"`
	Description     string             `bson:"description"`
	Image           string             `bson:"image"`
	Origin          string             `bson:"origine"`
	FirstAppearance string             `bson:"premiereApparition"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func toDoc(h *domain.Hero) heroDoc {
	return heroDoc{
		Name:            h.Name,
		Alias:           h.Alias,
		Universe:        string(h.Universe),
		Powers:          h.Powers,
		Description:     h.Description,
		Image:           h.Image,
		Origin:          h.Origin,
		FirstAppearance: h.FirstAppearance,
		CreatedAt:       h.CreatedAt,
	}
}

func (d heroDoc) toDomain() *domain.Hero {
	return &domain.Hero{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Alias:           d.Alias,
		Universe:        domain.Universe(d.Universe),
		Powers:          d.Powers,
		Description:     d.Description,
		Image:           d.Image,
		Origin:          d.Origin,
		FirstAppearance: d.FirstAppearance,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

// List returns all heroes matching filter, sorted per filter.Sort.
// The search term matches nom OR alias case-insensitively.
func (r *HeroRepository) List(ctx context.Context, filter ports.ListHeroesFilter) ([]*domain.Hero, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"nom": pattern},
			bson.M{"alias": pattern},
		}
	}
	if filter.Universe != "" && filter.Universe != "all" {
		query["universe"] = filter.Universe
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch filter.Sort {
	case "name":
		sort = bson.D{{Key: "nom", Value: 1}}
	case "oldest":
		sort = bson.D{{Key: "createdAt", Value: 1}}
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	heroes := make([]*domain.Hero, 0)
	for cursor.Next(ctx) {
		var d heroDoc
		if err := cursor.Decode(&d); err != nil {
			return nil, err
		}
		heroes = append(heroes, d.toDomain())
	}
	return heroes, cursor.Err()
}

func (r *HeroRepository) FindByID(ctx context.Context, id string) (*domain.Hero, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHeroNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d heroDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHeroNotFound
		}
		return nil, err
	}
	return d.toDomain(), nil
}

func (r *HeroRepository) Insert(ctx context.Context, hero *domain.Hero) (*domain.Hero, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toDoc(hero))
	if err != nil {
		return nil, err
	}

	created := *hero
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *HeroRepository) Replace(ctx context.Context, hero *domain.Hero) error {
	oid, err := primitive.ObjectIDFromHex(hero.ID)
	if err != nil {
		return domain.ErrHeroNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(hero))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

func (r *HeroRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHeroNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

// UpdateImage sets only the image field, leaving everything else untouched.
func (r *HeroRepository) UpdateImage(ctx context.Context, id, image string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHeroNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"image": image}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

func (r *HeroRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

func (r *HeroRepository) InsertMany(ctx context.Context, heroes []*domain.Hero) error {
	if len(heroes) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs := make([]interface{}, len(heroes))
	for i, h := range heroes {
		docs[i] = toDoc(h)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

// EnsureIndexes creates the indexes the list queries rely on.
func (r *HeroRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "nom", Value: 1}}},
		{Keys: bson.D{{Key: "universe", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
