package articles

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI documents the article endpoints mounted at prefix.
func (res *Resource) OpenAPI(prefix, version string) *openapi3.T {
	ref := openapi3.NewSchemaRef("#/components/schemas/Article", nil)

	results := openapi3.NewArraySchema()
	results.Items = ref
	page := openapi3.NewObjectSchema().
		WithProperty("count", openapi3.NewIntegerSchema()).
		WithProperty("has_next", openapi3.NewBoolSchema()).
		WithProperty("has_previous", openapi3.NewBoolSchema()).
		WithProperty("results", results)

	ok := func(desc string, schema *openapi3.SchemaRef) *openapi3.Response {
		return openapi3.NewResponse().WithDescription(desc).WithJSONSchemaRef(schema)
	}
	op := func(id string, responses map[int]*openapi3.Response) *openapi3.Operation {
		o := openapi3.NewOperation()
		o.OperationID = id
		for status, r := range responses {
			o.AddResponse(status, r)
		}
		return o
	}
	errorResponse := openapi3.NewResponse().WithDescription("Error detail")

	collection := &openapi3.PathItem{}
	collection.SetOperation(http.MethodGet, op("listArticles", map[int]*openapi3.Response{
		http.StatusOK:       ok("A page of articles", openapi3.NewSchemaRef("", page)),
		http.StatusNotFound: errorResponse,
	}))
	collection.SetOperation(http.MethodPost, op("createArticle", map[int]*openapi3.Response{
		http.StatusCreated:    ok("The created article", ref),
		http.StatusBadRequest: openapi3.NewResponse().WithDescription("Field errors"),
		http.StatusForbidden:  errorResponse,
	}))

	item := &openapi3.PathItem{}
	item.SetOperation(http.MethodGet, op("retrieveArticle", map[int]*openapi3.Response{
		http.StatusOK:       ok("The article", ref),
		http.StatusNotFound: errorResponse,
	}))
	for method, id := range map[string]string{http.MethodPut: "updateArticle", http.MethodPatch: "partialUpdateArticle"} {
		item.SetOperation(method, op(id, map[int]*openapi3.Response{
			http.StatusOK:         ok("The updated article", ref),
			http.StatusBadRequest: openapi3.NewResponse().WithDescription("Field errors"),
			http.StatusForbidden:  errorResponse,
			http.StatusNotFound:   errorResponse,
		}))
	}
	item.Parameters = openapi3.Parameters{{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewIntegerSchema())}}

	paths := openapi3.NewPaths()
	paths.Set(prefix, collection)
	paths.Set(prefix+"/{id}", item)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "restkit articles", Version: version},
		Paths:   paths,
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{"Article": openapi3.NewSchemaRef("", res.schema.OpenAPI())},
		},
	}
}
