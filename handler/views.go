package handler

import (
	"net/http"

	"github.com/dmitrymomot/restkit/pkg/pagination"
	"github.com/dmitrymomot/restkit/pkg/serializer"
)

// serializerContext exposes the request to fields and hooks under "request".
func serializerContext(ctx Context) serializer.Option {
	return serializer.WithContext(map[string]any{"request": ctx.API()})
}

// List renders objects with schema. With a nil strategy the default from
// settings is used; a strategy that declines to paginate renders every
// object as a plain list.
func List(ctx Context, schema *serializer.Schema, objects pagination.Sequence[any], strategy pagination.Strategy) Response {
	if strategy == nil {
		var err error
		if strategy, err = pagination.Default(); err != nil {
			return Error(err)
		}
	}

	items, err := strategy.Paginate(ctx, objects, ctx.API().QueryParams())
	if err != nil {
		return Error(err)
	}
	paginated := items != nil
	if !paginated {
		if items, err = pagination.Collect(ctx, objects); err != nil {
			return Error(err)
		}
	}

	data, err := schema.NewList(serializer.WithInstance(items), serializerContext(ctx)).Data(ctx)
	if err != nil {
		return Error(err)
	}
	if !paginated {
		return JSON(data)
	}

	envelope, err := strategy.PaginatedResponse(data)
	if err != nil {
		return Error(err)
	}
	return JSON(envelope)
}

// Retrieve renders a single instance.
func Retrieve(ctx Context, schema *serializer.Schema, instance any) Response {
	data, err := schema.New(serializer.WithInstance(instance), serializerContext(ctx)).Data(ctx)
	if err != nil {
		return Error(err)
	}
	return JSON(data)
}

// Create validates the request data, saves it with extra merged in and
// responds 201 with the created object's representation.
func Create(ctx Context, schema *serializer.Schema, extra map[string]any) Response {
	data, err := ctx.API().Data()
	if err != nil {
		return Error(err)
	}
	s := schema.New(serializer.WithData(data), serializerContext(ctx))
	return save(ctx, s, extra, http.StatusCreated)
}

// Update validates the request data against instance and saves it. Partial
// updates skip missing fields.
func Update(ctx Context, schema *serializer.Schema, instance any, partial bool) Response {
	data, err := ctx.API().Data()
	if err != nil {
		return Error(err)
	}
	opts := []serializer.Option{serializer.WithInstance(instance), serializer.WithData(data), serializerContext(ctx)}
	if partial {
		opts = append(opts, serializer.Partial())
	}
	return save(ctx, schema.New(opts...), nil, http.StatusOK)
}

func save(ctx Context, s serializer.Serializer, extra map[string]any, status int) Response {
	if err := s.Validate(ctx); err != nil {
		return Error(err)
	}
	if _, err := s.Save(ctx, extra); err != nil {
		return Error(err)
	}
	data, err := s.Data(ctx)
	if err != nil {
		return Error(err)
	}
	return JSON(data, WithJSONStatus(status))
}
