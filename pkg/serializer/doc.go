// Package serializer converts untyped request data into validated values and
// renders objects back into ordered, JSON-ready mappings.
//
// A Schema is declared once from typed fields and reused for every request.
// Each request creates its own serializer from the schema, which binds fresh
// copies of the fields, so no validation state is shared between requests.
//
// # Declaring a schema
//
//	var articleSchema = serializer.NewSchema("Article",
//		serializer.Declare("id", serializer.Integer(serializer.ReadOnly())),
//		serializer.Declare("title", serializer.Char(serializer.MaxLength(120))),
//		serializer.Declare("status", serializer.OneOf([]serializer.Choice{
//			{Value: "draft", Label: "Draft"},
//			{Value: "published", Label: "Published"},
//		}, serializer.Default("draft"))),
//		serializer.Declare("published_at", serializer.DateTime(serializer.Optional())),
//		serializer.Declare("summary", serializer.Method()),
//		serializer.WithMethod("get_summary", func(ctx context.Context, s *serializer.ObjectSerializer, instance any) (any, error) {
//			return summarize(serializer.Attribute(instance, "title")), nil
//		}),
//		serializer.WithMeta(serializer.Meta{Model: Article{}}),
//	)
//
// Fields are ordered by declaration. Schemas built with Extends list the base
// fields first; a redeclared field keeps its base position.
//
// # Validating input
//
//	s := articleSchema.NewObject(serializer.WithData(body))
//	if err := s.Validate(ctx); err != nil {
//		// err is a *validator.ValidationError with field details.
//	}
//	article, err := s.Save(ctx, map[string]any{"author_id": userID})
//
// Every field reports its own error; validation does not stop at the first
// failing field. Lists are validated with the Many option, and failures keep
// one entry per item so positions match the input.
//
// # Rendering
//
//	s := articleSchema.NewObject(serializer.WithInstance(article))
//	out, err := s.Data(ctx)
//
// Output is an *orderedmap.OrderedMap that marshals to JSON in field order.
// A field whose attribute is blank (nil, "", 0, false) is emitted unchanged
// without calling its render step.
package serializer
