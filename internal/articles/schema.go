package articles

import (
	"context"
	"fmt"
	"maps"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/pkg/serializer"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// NewSchema declares the article representation and persists saves to store.
func NewSchema(store Store) *serializer.Schema {
	return serializer.NewSchema("ArticleSerializer",
		serializer.Declare("id", serializer.Integer(serializer.ReadOnly())),
		serializer.Declare("title", serializer.Char(serializer.MaxLength(100), serializer.StripTags())),
		serializer.Declare("body", serializer.Char(serializer.Default(""))),
		serializer.Declare("status", serializer.OneOf([]serializer.Choice{
			{Value: StatusDraft, Label: "Draft"},
			{Value: StatusPublished, Label: "Published"},
		}, serializer.Default(StatusDraft))),
		serializer.Declare("created_at", serializer.DateTime(serializer.ReadOnly())),
		serializer.WithCreate(func(ctx context.Context, _ *serializer.ObjectSerializer, validated *orderedmap.OrderedMap[string, any]) (any, error) {
			return store.Add(ctx, toArticle(validated))
		}),
		serializer.WithUpdate(func(ctx context.Context, _ *serializer.ObjectSerializer, instance any, validated *orderedmap.OrderedMap[string, any]) (any, error) {
			current, ok := instance.(Article)
			if !ok {
				return nil, fmt.Errorf("articles: cannot update %T", instance)
			}
			a := maps.Clone(current)
			maps.Copy(a, toArticle(validated))
			if err := store.Put(ctx, a); err != nil {
				return nil, err
			}
			return a, nil
		}),
	)
}

func toArticle(validated *orderedmap.OrderedMap[string, any]) Article {
	a := make(Article, validated.Len())
	for pair := validated.Oldest(); pair != nil; pair = pair.Next() {
		a[pair.Key] = pair.Value
	}
	return a
}
